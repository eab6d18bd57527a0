package service

import (
	"context"
	"time"

	"yggdrasil-server/internal/model"
)

// AccountStore is the read-only view of user records the core needs.
type AccountStore interface {
	// FindByLogin matches the login identifier against email or username.
	// Returns model.ErrUserNotFound when nothing matches.
	FindByLogin(ctx context.Context, login string) (model.User, error)
}

// ProfileStore resolves in-game identities. Name lookups are case-sensitive.
type ProfileStore interface {
	ByID(ctx context.Context, id string) (model.Profile, error)
	ByName(ctx context.Context, name string) (model.Profile, error)
	// ByNames resolves a batch, silently dropping names with no match.
	ByNames(ctx context.Context, names []string) ([]model.Profile, error)
	ByUser(ctx context.Context, userID string) ([]model.Profile, error)
}

// SessionStore owns all mutable session state. Implementations must make
// Rotate atomic with respect to concurrent rotation/invalidation of the same
// session: the swap is keyed on the current access token, and a stale token
// must fail with model.ErrTokenMismatch rather than race.
type SessionStore interface {
	Create(ctx context.Context, s model.Session) error
	// FindByAccessToken returns only active, unexpired sessions;
	// everything else is model.ErrTokenMismatch.
	FindByAccessToken(ctx context.Context, accessToken string) (model.Session, error)
	Rotate(ctx context.Context, oldToken, newToken, selectedProfileID string, expiresAt time.Time) error
	Invalidate(ctx context.Context, accessToken string) error
	InvalidateAllForUser(ctx context.Context, userID string) error
	CleanExpired(ctx context.Context) (int64, error)
}

// TicketStore holds join tickets. Writes for the same (server id, profile id)
// pair are last-writer-wins; expired tickets read as absent.
type TicketStore interface {
	Put(ctx context.Context, t model.JoinTicket) error
	Get(ctx context.Context, serverID, profileID string) (model.JoinTicket, error)
	CleanExpired(ctx context.Context) (int64, error)
}
