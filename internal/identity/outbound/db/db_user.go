package db

import (
	"context"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/identity/entity"
	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/goerror"
)

// UpsertUserByPhone inserts a new user row or returns the existing one for the
// phone number. The no-op DO UPDATE makes RETURNING yield the surviving row, so
// concurrent calls for the same phone observe a single account.
func (s *DB) UpsertUserByPhone(ctx context.Context, in entity.User) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpsertUserByPhone")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO users (id, phone_number, full_name, email, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $5)
		ON CONFLICT (phone_number)
		DO UPDATE SET phone_number = excluded.phone_number
		RETURNING id, phone_number, full_name, email, verified, created_at, updated_at`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, in.ID, in.PhoneNumber, in.FullName, in.Email, in.CreatedAt).
		Scan(&user.ID, &user.PhoneNumber, &user.FullName, &user.Email, &user.Verified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserByPhone(ctx context.Context, phone string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByPhone")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, phone_number, full_name, email, verified, created_at, updated_at
		FROM users
		WHERE phone_number = $1`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, phone).
		Scan(&user.ID, &user.PhoneNumber, &user.FullName, &user.Email, &user.Verified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, phone_number, full_name, email, verified, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.PhoneNumber, &user.FullName, &user.Email, &user.Verified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

// MarkUserVerified flips the verified flag to true. The flag only ever moves
// in that direction; repeating the update is harmless.
func (s *DB) MarkUserVerified(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserVerified")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE users
		SET verified = TRUE, updated_at = NOW()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
