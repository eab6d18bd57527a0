package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/internal/repository"
)

const testDefaultTexture = "https://textures.example.com/default.png"

func newProfileEnv(t *testing.T) (*repository.MemoryStore, *ProfileService) {
	t.Helper()

	store := repository.NewMemoryStore()
	return store, NewProfileService(store, testDefaultTexture)
}

func addProfile(store *repository.MemoryStore, name, skinURL, capeURL string) model.Profile {
	p := model.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    uuid.NewString(),
		SkinURL:   skinURL,
		CapeURL:   capeURL,
		CreatedAt: time.Now().UTC(),
	}
	store.AddProfile(p)
	return p
}

func TestProfileService_ByName(t *testing.T) {
	ctx := context.Background()
	store, svc := newProfileEnv(t)
	addProfile(store, "Steve", "", "")

	t.Run("exact match resolves", func(t *testing.T) {
		profile, err := svc.ByName(ctx, "Steve")
		require.NoError(t, err)
		assert.Equal(t, "Steve", profile.Name)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		_, err := svc.ByName(ctx, "steve")
		assert.ErrorIs(t, err, model.ErrProfileNotFound)
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		_, err := svc.ByName(ctx, "nobody")
		assert.ErrorIs(t, err, model.ErrProfileNotFound)
	})
}

func TestProfileService_ResolveBatch(t *testing.T) {
	ctx := context.Background()
	store, svc := newProfileEnv(t)
	steve := addProfile(store, "Steve", "", "")
	alex := addProfile(store, "Alex", "", "")

	t.Run("drops unresolvable names silently", func(t *testing.T) {
		identities, err := svc.ResolveBatch(ctx, []string{"Steve", "nobody", "Alex"})
		require.NoError(t, err)
		require.Len(t, identities, 2)

		ids := []string{identities[0].ID, identities[1].ID}
		assert.Contains(t, ids, steve.ID)
		assert.Contains(t, ids, alex.ID)
	})

	t.Run("all unknown yields an empty slice", func(t *testing.T) {
		identities, err := svc.ResolveBatch(ctx, []string{"nobody", "ghost"})
		require.NoError(t, err)
		assert.Empty(t, identities)
	})

	t.Run("empty input yields an empty slice", func(t *testing.T) {
		identities, err := svc.ResolveBatch(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, identities)
		assert.Empty(t, identities)
	})

	t.Run("stable for equal inputs", func(t *testing.T) {
		first, err := svc.ResolveBatch(ctx, []string{"Alex", "Steve"})
		require.NoError(t, err)
		second, err := svc.ResolveBatch(ctx, []string{"Alex", "Steve"})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestProfileService_TextureRedirect(t *testing.T) {
	ctx := context.Background()
	store, svc := newProfileEnv(t)
	full := addProfile(store, "Steve", "https://textures.example.com/steve-skin.png", "https://textures.example.com/steve-cape.png")
	bare := addProfile(store, "Alex", "", "")

	t.Run("skin by name", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureSkin, "Steve")
		require.NoError(t, err)
		assert.Equal(t, full.SkinURL, url)
	})

	t.Run("cape by name", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureCape, "Steve")
		require.NoError(t, err)
		assert.Equal(t, full.CapeURL, url)
	})

	t.Run("skin by profile id", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureUUIDSkin, full.ID)
		require.NoError(t, err)
		assert.Equal(t, full.SkinURL, url)
	})

	t.Run("profile without the texture falls back to the default", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureSkin, bare.Name)
		require.NoError(t, err)
		assert.Equal(t, testDefaultTexture, url)
	})

	t.Run("unknown name falls back to the default", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureSkin, "nobody")
		require.NoError(t, err)
		assert.Equal(t, testDefaultTexture, url)
	})

	t.Run("malformed profile id falls back to the default", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureUUIDSkin, "notauuid")
		require.NoError(t, err)
		assert.Equal(t, testDefaultTexture, url)
	})

	t.Run("generic kind with empty identifier is a hard not-found", func(t *testing.T) {
		_, err := svc.TextureRedirect(ctx, TextureGeneric, "")
		assert.ErrorIs(t, err, model.ErrTextureNotFound)
	})

	t.Run("generic kind with the undefined sentinel is a hard not-found", func(t *testing.T) {
		_, err := svc.TextureRedirect(ctx, TextureGeneric, "undefined")
		assert.ErrorIs(t, err, model.ErrTextureNotFound)
	})

	t.Run("generic kind with an unknown id falls back to the default", func(t *testing.T) {
		url, err := svc.TextureRedirect(ctx, TextureGeneric, "user-res")
		require.NoError(t, err)
		assert.Equal(t, testDefaultTexture, url)
	})
}

func TestProfileService_SkinDescriptor(t *testing.T) {
	ctx := context.Background()
	store, svc := newProfileEnv(t)
	full := addProfile(store, "Steve", "https://textures.example.com/steve-skin.png", "https://textures.example.com/steve-cape.png")
	addProfile(store, "Alex", "", "")

	t.Run("lists the texture set", func(t *testing.T) {
		descriptor, err := svc.SkinDescriptor(ctx, "Steve")
		require.NoError(t, err)
		assert.Equal(t, "Steve", descriptor.Username)
		assert.Equal(t, full.SkinURL, descriptor.Textures["skin"])
		assert.Equal(t, full.CapeURL, descriptor.Textures["cape"])
	})

	t.Run("omits absent textures", func(t *testing.T) {
		descriptor, err := svc.SkinDescriptor(ctx, "Alex")
		require.NoError(t, err)
		assert.Empty(t, descriptor.Textures)
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		_, err := svc.SkinDescriptor(ctx, "nobody")
		assert.ErrorIs(t, err, model.ErrProfileNotFound)
	})
}
