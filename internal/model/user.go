package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is a selectable in-game identity. Name matches are case-sensitive;
// a name and an id each resolve to at most one profile.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	SkinURL   string    `json:"skin_url,omitempty"`
	CapeURL   string    `json:"cape_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicIdentity is the shape exposed to game servers and launchers.
func (p Profile) PublicIdentity() ProfileIdentity {
	return ProfileIdentity{ID: p.ID, Name: p.Name}
}

type ProfileIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
