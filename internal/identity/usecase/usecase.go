package usecase

import (
	"context"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/clock"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/config"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goroutine"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/instrument"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/jwt"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/mail"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/otp"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/replay"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/sms"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/uid"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	UpsertUserByPhone(ctx context.Context, in entity.User) (*entity.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	MarkUserVerified(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB    repoDB
	messenger sms.Messenger
	mailer    mail.Mail
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.OTP
	replay    replay.Guard
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	RepoDB     repoDB
	Messenger  sms.Messenger
	Mailer     mail.Mail
	Validator  validator.Validator
	Config     config.Config
	UID        uid.NumberID
	UUID       uid.StringID
	OTP        otp.OTP
	Replay     replay.Guard
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		messenger: dep.Messenger,
		mailer:    dep.Mailer,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		uuid:      dep.UUID,
		otp:       dep.OTP,
		replay:    dep.Replay,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// otpEcho reports whether derived codes may be included in responses. Outside
// production there is no SMS provider wired to a real number, so the code is
// echoed back for manual testing.
func (s *Usecase) otpEcho() bool {
	return s.cfg.GetString("app.env") != "production"
}
