package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yggdrasil-server/internal/model"
)

func TestSessionServer_JoinAndHasJoined(t *testing.T) {
	fixture := newServerFixture(t)
	profile := fixture.addUser(t, "steve@example.com", "Steve", "hunter2")
	auth := fixture.authenticate(t, "steve@example.com", "hunter2")

	t.Run("hasJoined before any join answers 204", func(t *testing.T) {
		rec := fixture.get(t, "/api/sessionserver/session/minecraft/hasJoined?username=Steve&serverId=srv-1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("join with a valid session answers 204", func(t *testing.T) {
		rec := fixture.postJSON(t, "/api/sessionserver/session/minecraft/join", map[string]string{
			"accessToken":     auth.AccessToken,
			"selectedProfile": profile.ID,
			"serverId":        "srv-1",
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("hasJoined after join answers the profile identity", func(t *testing.T) {
		rec := fixture.get(t, "/api/sessionserver/session/minecraft/hasJoined?username=Steve&serverId=srv-1")
		require.Equal(t, http.StatusOK, rec.Code)

		var identity model.ProfileIdentity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
		assert.Equal(t, profile.ID, identity.ID)
		assert.Equal(t, "Steve", identity.Name)
	})

	t.Run("hasJoined against a different server answers 204", func(t *testing.T) {
		rec := fixture.get(t, "/api/sessionserver/session/minecraft/hasJoined?username=Steve&serverId=srv-other")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("join with an unknown token answers 403", func(t *testing.T) {
		rec := fixture.postJSON(t, "/api/sessionserver/session/minecraft/join", map[string]string{
			"accessToken":     "error-access-token",
			"selectedProfile": profile.ID,
			"serverId":        "srv-1",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "ForbiddenOperationException", decodeError(t, rec)["error"])
	})

	t.Run("join without a JSON body answers 415", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sessionserver/session/minecraft/join", strings.NewReader("x"))
		rec := httptest.NewRecorder()
		fixture.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestSessionServer_ProfileByID(t *testing.T) {
	fixture := newServerFixture(t)
	profile := fixture.addUser(t, "steve@example.com", "Steve", "hunter2")

	t.Run("known id answers the profile identity", func(t *testing.T) {
		rec := fixture.get(t, "/api/sessionserver/session/minecraft/profile/"+profile.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		var identity model.ProfileIdentity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
		assert.Equal(t, "Steve", identity.Name)
	})

	t.Run("unknown id answers 204", func(t *testing.T) {
		rec := fixture.get(t, "/api/sessionserver/session/minecraft/profile/no-such-id")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestProfilesEndpoint_Resolve(t *testing.T) {
	fixture := newServerFixture(t)
	steve := fixture.addUser(t, "steve@example.com", "Steve", "hunter2")
	fixture.addUser(t, "alex@example.com", "Alex", "hunter2")

	t.Run("known names resolve, unknown names are dropped", func(t *testing.T) {
		rec := fixture.postJSON(t, "/api/api/profiles/minecraft", []string{"Steve", "NoSuchPlayer"})
		require.Equal(t, http.StatusOK, rec.Code)

		var identities []model.ProfileIdentity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identities))
		require.Len(t, identities, 1)
		assert.Equal(t, steve.ID, identities[0].ID)
	})

	t.Run("empty body still answers an empty array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/api/profiles/minecraft", nil)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		fixture.handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("all unknown names answer an empty array", func(t *testing.T) {
		rec := fixture.postJSON(t, "/api/api/profiles/minecraft", []string{"Nobody"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestSkinEndpoints(t *testing.T) {
	fixture := newServerFixture(t)
	profile := fixture.addUser(t, "steve@example.com", "Steve", "hunter2")

	textured := fixture.addUser(t, "alex@example.com", "Alex", "hunter2")
	textured.SkinURL = "https://textures.example.com/alex-skin.png"
	textured.CapeURL = "https://textures.example.com/alex-cape.png"
	fixture.store.AddProfile(textured)

	t.Run("skin by name redirects to the stored skin", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/skin/Alex.png")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, textured.SkinURL, rec.Header().Get("Location"))
	})

	t.Run("cape by name redirects to the stored cape", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/cap/Alex.png")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, textured.CapeURL, rec.Header().Get("Location"))
	})

	t.Run("skin by name falls back to the default texture", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/skin/Steve.png")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, fixtureDefaultTexture, rec.Header().Get("Location"))
	})

	t.Run("cape by name falls back to the default texture", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/cap/Steve.png")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, fixtureDefaultTexture, rec.Header().Get("Location"))
	})

	t.Run("skin by uuid redirects even for unknown ids", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/uskin/no-such-id.png")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, fixtureDefaultTexture, rec.Header().Get("Location"))
	})

	t.Run("texture by id redirects for a known profile", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/textures/" + profile.ID)
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("texture for the undefined id answers 404", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/textures/undefined")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("descriptor for a textured name lists its URLs", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/Alex.json")
		require.Equal(t, http.StatusOK, rec.Code)

		var descriptor model.SkinDescriptor
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &descriptor))
		assert.Equal(t, "Alex", descriptor.Username)
		assert.Equal(t, textured.SkinURL, descriptor.Textures["skin"])
		assert.Equal(t, textured.CapeURL, descriptor.Textures["cape"])
	})

	t.Run("descriptor without textures answers an empty map", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/Steve.json")
		require.Equal(t, http.StatusOK, rec.Code)

		var descriptor model.SkinDescriptor
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &descriptor))
		assert.Equal(t, "Steve", descriptor.Username)
		assert.Empty(t, descriptor.Textures)
	})

	t.Run("descriptor for an unknown name answers 401", func(t *testing.T) {
		rec := fixture.get(t, "/api/skin/NoSuchPlayer.json")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
