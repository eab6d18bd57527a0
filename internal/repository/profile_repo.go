package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yggdrasil-server/internal/model"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, name, user_id, skin_url, cape_url, created_at`

func (r *ProfileRepository) ByID(ctx context.Context, id string) (model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.UserID, &p.SkinURL, &p.CapeURL, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, model.ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("find profile by id: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) ByName(ctx context.Context, name string) (model.Profile, error) {
	var p model.Profile
	// Case-sensitive on purpose: display names are exact-match identifiers.
	err := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name = $1`, name).
		Scan(&p.ID, &p.Name, &p.UserID, &p.SkinURL, &p.CapeURL, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, model.ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("find profile by name: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) ByNames(ctx context.Context, names []string) ([]model.Profile, error) {
	if len(names) == 0 {
		return []model.Profile{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("find profiles by names: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (r *ProfileRepository) ByUser(ctx context.Context, userID string) ([]model.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("find profiles by user: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (r *ProfileRepository) Create(ctx context.Context, p model.Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (id, name, user_id, skin_url, cape_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.UserID, p.SkinURL, p.CapeURL, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func scanProfiles(rows pgx.Rows) ([]model.Profile, error) {
	profiles := make([]model.Profile, 0)
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &p.SkinURL, &p.CapeURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
