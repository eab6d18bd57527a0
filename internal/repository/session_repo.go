package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yggdrasil-server/internal/model"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, s model.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (access_token, client_token, user_id, selected_profile_id, active, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.AccessToken, s.ClientToken, s.UserID, s.SelectedProfileID, s.Active, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByAccessToken(ctx context.Context, accessToken string) (model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx,
		`SELECT access_token, client_token, user_id, selected_profile_id, active, created_at, expires_at
		 FROM sessions WHERE access_token = $1 AND active AND expires_at > now()`,
		accessToken).
		Scan(&s.AccessToken, &s.ClientToken, &s.UserID, &s.SelectedProfileID, &s.Active, &s.CreatedAt, &s.ExpiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Session{}, model.ErrTokenMismatch
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("find session: %w", err)
	}
	return s, nil
}

// Rotate swaps the access token in a single conditional UPDATE keyed on the
// current token. Of N concurrent rotations presenting the same old token
// exactly one sees RowsAffected()==1; the rest get ErrTokenMismatch.
func (r *SessionRepository) Rotate(ctx context.Context, oldToken, newToken, selectedProfileID string, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sessions
		 SET access_token = $2,
		     selected_profile_id = CASE WHEN $3 = '' THEN selected_profile_id ELSE $3 END,
		     expires_at = $4
		 WHERE access_token = $1 AND active AND expires_at > now()`,
		oldToken, newToken, selectedProfileID, expiresAt)
	if err != nil {
		return fmt.Errorf("rotate session token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTokenMismatch
	}
	return nil
}

func (r *SessionRepository) Invalidate(ctx context.Context, accessToken string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET active = FALSE WHERE access_token = $1`, accessToken)
	if err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

func (r *SessionRepository) InvalidateAllForUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET active = FALSE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("invalidate sessions for user: %w", err)
	}
	return nil
}

func (r *SessionRepository) CleanExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at <= now() OR NOT active`)
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
