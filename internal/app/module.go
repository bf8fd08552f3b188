package app

import (
	"log/slog"
	"os"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			OTP:        a.otp,
			Replay:     a.replay,
			Messenger:  a.messenger,
			Mailer:     a.mail,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}
}
