package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goerror"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/jwt"
)

type ProfileOutput struct {
	User entity.User
}

func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "profile requested for missing account", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{User: *user}, nil
}
