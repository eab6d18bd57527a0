package model

import "encoding/json"

type AuthenticateRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	ClientToken string `json:"clientToken,omitempty"`
	RequestUser bool   `json:"requestUser,omitempty"`
	Agent       *Agent `json:"agent,omitempty"`
}

type Agent struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// RefreshRequest keeps selectedProfile raw: clients send either a profile
// object or a bare string, and mere presence matters when the session already
// has a selection.
type RefreshRequest struct {
	AccessToken     string          `json:"accessToken"`
	ClientToken     string          `json:"clientToken"`
	SelectedProfile json.RawMessage `json:"selectedProfile,omitempty"`
}

// RequestedProfileID extracts the profile id from the raw selectedProfile
// value, accepting both {"id": "..."} and a plain string.
func (r RefreshRequest) RequestedProfileID() string {
	if len(r.SelectedProfile) == 0 {
		return ""
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(r.SelectedProfile, &obj); err == nil && obj.ID != "" {
		return obj.ID
	}

	var s string
	if err := json.Unmarshal(r.SelectedProfile, &s); err == nil {
		return s
	}

	return string(r.SelectedProfile)
}

// ReselectRequested reports whether any selectedProfile value was supplied,
// well-formed or not.
func (r RefreshRequest) ReselectRequested() bool {
	return len(r.SelectedProfile) > 0 && string(r.SelectedProfile) != "null"
}

type TokenRequest struct {
	AccessToken string `json:"accessToken"`
	ClientToken string `json:"clientToken"`
}

type SignOutRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type JoinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}
