package service

import (
	"context"
	"errors"
	"strings"

	"yggdrasil-server/internal/model"
)

// TextureKind selects which texture a redirect endpoint resolves.
type TextureKind string

const (
	TextureCape     TextureKind = "cape"
	TextureSkin     TextureKind = "skin"
	TextureUUIDSkin TextureKind = "uuid-skin"
	TextureGeneric  TextureKind = "texture"
)

// ProfileService resolves profile identity and texture locations. Lookups
// never surface hard errors for absent profiles; texture resolution degrades
// to a fixed placeholder instead.
type ProfileService struct {
	profiles          ProfileStore
	defaultTextureURL string
}

func NewProfileService(profiles ProfileStore, defaultTextureURL string) *ProfileService {
	return &ProfileService{profiles: profiles, defaultTextureURL: defaultTextureURL}
}

func (p *ProfileService) ByName(ctx context.Context, name string) (model.Profile, error) {
	return p.profiles.ByName(ctx, name)
}

func (p *ProfileService) ByID(ctx context.Context, id string) (model.Profile, error) {
	return p.profiles.ByID(ctx, id)
}

// ResolveBatch maps names to profiles, dropping names with no match. A nil
// or empty input yields an empty slice; the operation itself never fails on
// unknown names.
func (p *ProfileService) ResolveBatch(ctx context.Context, names []string) ([]model.ProfileIdentity, error) {
	if len(names) == 0 {
		return []model.ProfileIdentity{}, nil
	}

	profiles, err := p.profiles.ByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	identities := make([]model.ProfileIdentity, 0, len(profiles))
	for _, profile := range profiles {
		identities = append(identities, profile.PublicIdentity())
	}
	return identities, nil
}

// TextureRedirect resolves the redirect target for a texture request. An
// unresolvable identifier degrades to the default placeholder; only the
// generic kind with an empty or "undefined" identifier is a hard not-found,
// since that indicates a malformed caller rather than an unknown profile.
func (p *ProfileService) TextureRedirect(ctx context.Context, kind TextureKind, identifier string) (string, error) {
	if kind == TextureGeneric {
		if strings.TrimSpace(identifier) == "" || identifier == "undefined" {
			return "", model.ErrTextureNotFound
		}
	}

	var (
		profile model.Profile
		err     error
	)
	switch kind {
	case TextureCape, TextureSkin:
		profile, err = p.profiles.ByName(ctx, identifier)
	default:
		profile, err = p.profiles.ByID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return p.defaultTextureURL, nil
		}
		return "", err
	}

	url := profile.SkinURL
	if kind == TextureCape {
		url = profile.CapeURL
	}
	if url == "" {
		return p.defaultTextureURL, nil
	}
	return url, nil
}

// SkinDescriptor returns the texture URL set for a named profile.
func (p *ProfileService) SkinDescriptor(ctx context.Context, name string) (model.SkinDescriptor, error) {
	profile, err := p.profiles.ByName(ctx, name)
	if err != nil {
		return model.SkinDescriptor{}, err
	}

	textures := map[string]string{}
	if profile.SkinURL != "" {
		textures["skin"] = profile.SkinURL
	}
	if profile.CapeURL != "" {
		textures["cape"] = profile.CapeURL
	}
	return model.SkinDescriptor{Username: profile.Name, Textures: textures}, nil
}
