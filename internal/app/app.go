package app

import (
	"context"
	"net/http"

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
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.OTP
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	replay    replay.Guard
	messenger sms.Messenger
	mail      mail.Mail

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMessenger()
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
