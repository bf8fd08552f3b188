package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goerror"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/mail"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/sms"
)

type SignupInput struct {
	PhoneNumber string `validate:"required,phone"`
	FullName    string `validate:"required,min=2,max=100"`
	Email       string `validate:"required,email"`
}

type SignupOutput struct {
	CorrelationID string
	User          entity.User
	// OTP is set only outside production.
	OTP string
}

func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	correlationID := s.uuid.Generate()

	user, err := s.repoDB.UpsertUserByPhone(ctx, entity.User{
		ID:          s.uid.Generate(),
		PhoneNumber: in.PhoneNumber,
		FullName:    in.FullName,
		Email:       in.Email,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert user by phone", "phone", in.PhoneNumber, "error", err)
		return nil, goerror.WithCorrelationID(goerror.NewServer(err), correlationID)
	}

	if user.Verified {
		slog.WarnContext(ctx, "signup attempted on verified account", "user_id", user.ID)
		return nil, goerror.WithCorrelationID(
			goerror.NewBusiness("Phone number already verified, please login", goerror.CodeConflict),
			correlationID,
		)
	}

	code := s.otp.Derive(user.PhoneNumber, correlationID, s.clock.Now())
	if err := s.dispatchCode(ctx, user, code); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch signup otp", "user_id", user.ID, "error", err)
		return nil, goerror.WithCorrelationID(goerror.NewServer(err), correlationID)
	}

	out := &SignupOutput{
		CorrelationID: correlationID,
		User:          *user,
	}
	if s.otpEcho() {
		out.OTP = code
	}

	return out, nil
}

func (s *Usecase) dispatchCode(ctx context.Context, user *entity.User, code string) error {
	body := "Your verification code is " + code + ". It expires in 10 minutes."

	if err := s.messenger.Send(ctx, sms.Message{To: user.PhoneNumber, Body: body}); err != nil {
		return err
	}

	// Best effort copy to the account email; SMS is the channel of record.
	// The send must outlive the request, so only the cancellation is dropped;
	// trace and correlation values stay attached.
	if s.mailer != nil && user.Email != "" {
		email := user.Email
		s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			err := s.mailer.Send(ctx, mail.Message{
				To:       []string{email},
				Subject:  "Your verification code",
				TextBody: body,
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.WarnContext(ctx, "failed to send otp email copy", "error", err)
			}
			return nil
		})
	}

	return nil
}
