package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goerror"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/otp"
)

type VerifyInput struct {
	PhoneNumber   string `validate:"required,phone"`
	OTP           string `validate:"required,len=6"`
	CorrelationID string `validate:"required"`
	Purpose       entity.Purpose
}

type VerifyOutput struct {
	Token         string
	CorrelationID string
	User          entity.User
}

func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.OTP = strings.TrimSpace(in.OTP)
	in.CorrelationID = strings.TrimSpace(in.CorrelationID)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Purpose.IsUnknown() {
		return nil, goerror.NewInvalidInput(nil, "purpose", "purpose must be signup or login")
	}

	user, err := s.repoDB.GetUserByPhone(ctx, in.PhoneNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify attempted on unknown phone number")
		return nil, goerror.WithCorrelationID(
			goerror.NewBusiness("Account not found, please signup first", goerror.CodeNotFound),
			in.CorrelationID,
		)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by phone", "error", err)
		return nil, goerror.WithCorrelationID(goerror.NewServer(err), in.CorrelationID)
	}

	if !s.otp.Check(user.PhoneNumber, in.CorrelationID, in.OTP, s.clock.Now()) {
		slog.WarnContext(ctx, "otp verification failed", "user_id", user.ID, "purpose", in.Purpose.String())
		return nil, goerror.WithCorrelationID(
			goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized),
			in.CorrelationID,
		)
	}

	switch in.Purpose {
	case entity.PurposeSignup:
		// Verified only ever moves false→true; repeating the transition is a no-op.
		if !user.Verified {
			if err := s.repoDB.MarkUserVerified(ctx, user.ID); err != nil {
				slog.ErrorContext(ctx, "failed to repo mark user verified", "user_id", user.ID, "error", err)
				return nil, goerror.WithCorrelationID(goerror.NewServer(err), in.CorrelationID)
			}
			user.Verified = true
		}

	case entity.PurposeLogin:
		if !user.Verified {
			slog.WarnContext(ctx, "login verify attempted on unverified account", "user_id", user.ID)
			return nil, goerror.WithCorrelationID(
				goerror.NewBusiness("Account not verified, please complete signup", goerror.CodeForbidden),
				in.CorrelationID,
			)
		}
	}

	sessionCID := s.uuid.Generate()
	token, err := s.jwt.Generate(user.ID, sessionCID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", user.ID, "error", err)
		return nil, goerror.WithCorrelationID(goerror.NewServer(err), in.CorrelationID)
	}

	// Consumed last: a store or signing failure above must not burn the code,
	// the caller can retry with the same attempt inside the window.
	if err := s.consumeOTP(ctx, user.PhoneNumber, in.CorrelationID); err != nil {
		return nil, err
	}

	return &VerifyOutput{
		Token:         token,
		CorrelationID: sessionCID,
		User:          *user,
	}, nil
}

// consumeOTP enforces single-use codes when the replay guard is enabled. The
// guard key is scoped to the attempt, so the TTL only has to outlive the code
// validity span.
func (s *Usecase) consumeOTP(ctx context.Context, phone, correlationID string) error {
	ttl := 2 * s.cfg.GetMinute("otp.window_minutes")
	if ttl <= 0 {
		ttl = 2 * otp.DefaultWindow
	}

	fresh, err := s.replay.Consume(ctx, phone+"|"+correlationID, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume otp replay guard", "error", err)
		return goerror.WithCorrelationID(goerror.NewServer(err), correlationID)
	}

	if !fresh {
		slog.WarnContext(ctx, "otp replay detected")
		return goerror.WithCorrelationID(
			goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized),
			correlationID,
		)
	}

	return nil
}
