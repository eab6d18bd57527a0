package model

import "time"

// Session is the login state a launcher holds. AccessToken rotates on every
// refresh; ClientToken is chosen by the caller at authenticate time and never
// changes. A session with Active=false is logically deleted: it never
// validates or refreshes again, physical removal is left to the sweeper.
type Session struct {
	AccessToken       string    `json:"access_token"`
	ClientToken       string    `json:"client_token"`
	UserID            string    `json:"user_id"`
	SelectedProfileID string    `json:"selected_profile_id,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// JoinTicket is the write-once-read-once proof that a profile holding a valid
// session declared intent to connect to a specific game server. At most one
// live ticket exists per (server id, profile id) pair.
type JoinTicket struct {
	ServerID    string    `json:"server_id"`
	ProfileID   string    `json:"profile_id"`
	AccessToken string    `json:"access_token"`
	IssuedAt    time.Time `json:"issued_at"`
}
