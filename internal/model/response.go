package model

type AuthenticateResponse struct {
	AccessToken       string            `json:"accessToken"`
	ClientToken       string            `json:"clientToken"`
	SelectedProfile   *ProfileIdentity  `json:"selectedProfile,omitempty"`
	AvailableProfiles []ProfileIdentity `json:"availableProfiles"`
	User              *ResponseUser     `json:"user,omitempty"`
}

type RefreshResponse struct {
	AccessToken     string           `json:"accessToken"`
	ClientToken     string           `json:"clientToken"`
	SelectedProfile *ProfileIdentity `json:"selectedProfile,omitempty"`
}

type ResponseUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SkinDescriptor is the /api/skin/{name}.json payload.
type SkinDescriptor struct {
	Username string            `json:"username"`
	Textures map[string]string `json:"textures"`
}
