package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goerror"
)

type LoginInput struct {
	PhoneNumber string `validate:"required,phone"`
}

type LoginOutput struct {
	CorrelationID string
	// OTP is set only outside production.
	OTP string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	correlationID := s.uuid.Generate()

	user, err := s.repoDB.GetUserByPhone(ctx, in.PhoneNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login attempted on unknown phone number")
		return nil, goerror.WithCorrelationID(
			goerror.NewBusiness("Account not found, please signup first", goerror.CodeNotFound),
			correlationID,
		)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by phone", "error", err)
		return nil, goerror.WithCorrelationID(goerror.NewServer(err), correlationID)
	}

	if !user.Verified {
		slog.WarnContext(ctx, "login attempted on unverified account", "user_id", user.ID)
		return nil, goerror.WithCorrelationID(
			goerror.NewBusiness("Account not verified, please complete signup", goerror.CodeForbidden),
			correlationID,
		)
	}

	code := s.otp.Derive(user.PhoneNumber, correlationID, s.clock.Now())
	if err := s.dispatchCode(ctx, user, code); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch login otp", "user_id", user.ID, "error", err)
		return nil, goerror.WithCorrelationID(goerror.NewServer(err), correlationID)
	}

	out := &LoginOutput{CorrelationID: correlationID}
	if s.otpEcho() {
		out.OTP = code
	}

	return out, nil
}
