package inbound

import (
	"context"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/usecase"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// OTP authentication flow
	r.POST("/api/v1/identity/signup", end.Signup)
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/verify", end.Verify)

	// User Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
}
