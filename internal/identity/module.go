// Package identity wires the phone OTP authentication module: entities,
// use cases, HTTP endpoints and the postgres-backed user store.
package identity

import (
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/inbound"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/outbound/db"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/usecase"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/clock"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/config"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goroutine"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/instrument"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/jwt"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/mail"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/otp"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/replay"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/router"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/sms"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/uid"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	OTP        otp.OTP                    `validate:"required"`
	Replay     replay.Guard               `validate:"required"`
	Messenger  sms.Messenger              `validate:"required"`
	Mailer     mail.Mail
	Clock      clock.Clocker       `validate:"required"`
	Validator  validator.Validator `validate:"required"`
	JWT        jwt.JWT             `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbAuth,
		Messenger:  dep.Messenger,
		Mailer:     dep.Mailer,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		UUID:       dep.UUID,
		OTP:        dep.OTP,
		Replay:     dep.Replay,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
