package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/pkg/apierror"
)

const (
	msgInvalidCredentials = "Invalid credentials. Invalid username or password."
	msgInvalidToken       = "Invalid token."
	msgProfileAssigned    = "Access token already has a profile assigned."
	msgProfileNotOwned    = "Invalid token. The requested profile is not available."
)

// SessionService owns the session lifecycle: authenticate, refresh, validate,
// invalidate and sign-out-all. Every transition on a single session goes
// through the store's compare-and-swap, so concurrent refreshes on the same
// token have exactly one winner.
type SessionService struct {
	accounts   AccountStore
	profiles   ProfileStore
	sessions   SessionStore
	tokens     *TokenIssuer
	sessionTTL time.Duration
}

func NewSessionService(accounts AccountStore, profiles ProfileStore, sessions SessionStore, tokens *TokenIssuer, sessionTTL time.Duration) *SessionService {
	return &SessionService{
		accounts:   accounts,
		profiles:   profiles,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

type AuthResult struct {
	Session           model.Session
	User              model.User
	SelectedProfile   *model.Profile
	AvailableProfiles []model.Profile
}

// Authenticate verifies the credential and opens a fresh session. When the
// user owns exactly one profile it is selected immediately; otherwise the
// selection stays open until a later refresh supplies one.
func (s *SessionService) Authenticate(ctx context.Context, login, password, clientToken string) (AuthResult, error) {
	user, err := s.verifyCredential(ctx, login, password)
	if err != nil {
		return AuthResult{}, err
	}

	profiles, err := s.profiles.ByUser(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	accessToken, err := s.tokens.Mint(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	if strings.TrimSpace(clientToken) == "" {
		clientToken = uuid.NewString()
	}

	now := time.Now().UTC()
	session := model.Session{
		AccessToken: accessToken,
		ClientToken: clientToken,
		UserID:      user.ID,
		Active:      true,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL),
	}

	var selected *model.Profile
	if len(profiles) == 1 {
		selected = &profiles[0]
		session.SelectedProfileID = selected.ID
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return AuthResult{}, err
	}

	slog.Info("session opened", "user_id", user.ID, "auto_selected", selected != nil)
	return AuthResult{Session: session, User: user, SelectedProfile: selected, AvailableProfiles: profiles}, nil
}

// Refresh rotates the access token. A session whose profile is already
// selected rejects any reselection attempt, even one naming the current
// profile. The rotation itself is a store-level compare-and-swap keyed on
// the old token, so a concurrent loser observes a token mismatch.
func (s *SessionService) Refresh(ctx context.Context, accessToken, clientToken, requestedProfileID string, reselect bool) (AuthResult, error) {
	session, err := s.sessions.FindByAccessToken(ctx, accessToken)
	if err != nil {
		return AuthResult{}, forbiddenIfMismatch(err)
	}
	if session.ClientToken != clientToken {
		return AuthResult{}, apierror.Forbidden(msgInvalidToken)
	}

	if session.SelectedProfileID != "" && reselect {
		return AuthResult{}, apierror.InvalidRequest(msgProfileAssigned)
	}

	adoptProfileID := ""
	if session.SelectedProfileID == "" && requestedProfileID != "" {
		owned, err := s.ownsProfile(ctx, session.UserID, requestedProfileID)
		if err != nil {
			return AuthResult{}, err
		}
		if !owned {
			return AuthResult{}, apierror.Forbidden(msgProfileNotOwned)
		}
		adoptProfileID = requestedProfileID
	}

	newToken, err := s.tokens.Mint(session.UserID)
	if err != nil {
		return AuthResult{}, err
	}

	expiresAt := time.Now().UTC().Add(s.sessionTTL)
	if err := s.sessions.Rotate(ctx, accessToken, newToken, adoptProfileID, expiresAt); err != nil {
		return AuthResult{}, forbiddenIfMismatch(err)
	}

	session.AccessToken = newToken
	session.ExpiresAt = expiresAt
	if adoptProfileID != "" {
		session.SelectedProfileID = adoptProfileID
	}

	var selected *model.Profile
	if session.SelectedProfileID != "" {
		p, err := s.profiles.ByID(ctx, session.SelectedProfileID)
		if err == nil {
			selected = &p
		}
	}

	return AuthResult{Session: session, SelectedProfile: selected}, nil
}

// Validate succeeds iff an active session holds exactly this token pair.
func (s *SessionService) Validate(ctx context.Context, accessToken, clientToken string) error {
	session, err := s.sessions.FindByAccessToken(ctx, accessToken)
	if err != nil {
		return forbiddenIfMismatch(err)
	}
	if session.ClientToken != clientToken {
		return apierror.Forbidden(msgInvalidToken)
	}
	return nil
}

// Invalidate always succeeds: whether the token matched a session is
// deliberately not observable by the caller.
func (s *SessionService) Invalidate(ctx context.Context, accessToken, clientToken string) error {
	session, err := s.sessions.FindByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, model.ErrTokenMismatch) {
			return nil
		}
		return err
	}
	if session.ClientToken != clientToken {
		return nil
	}

	return s.sessions.Invalidate(ctx, accessToken)
}

// SignOut verifies the credential and invalidates every session the user
// owns.
func (s *SessionService) SignOut(ctx context.Context, login, password string) error {
	user, err := s.verifyCredential(ctx, login, password)
	if err != nil {
		return err
	}

	if err := s.sessions.InvalidateAllForUser(ctx, user.ID); err != nil {
		return err
	}

	slog.Info("all sessions invalidated", "user_id", user.ID)
	return nil
}

// StartCleanupTicker periodically sweeps inactive and expired sessions.
func (s *SessionService) StartCleanupTicker(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.sessions.CleanExpired(ctx)
			if err != nil {
				slog.Warn("session cleanup failed", "error", err.Error())
				continue
			}
			if removed > 0 {
				slog.Info("expired sessions removed", "count", removed)
			}
		}
	}
}

func (s *SessionService) verifyCredential(ctx context.Context, login, password string) (model.User, error) {
	user, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.User{}, apierror.Forbidden(msgInvalidCredentials)
		}
		return model.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.User{}, apierror.Forbidden(msgInvalidCredentials)
	}
	return user, nil
}

func (s *SessionService) ownsProfile(ctx context.Context, userID, profileID string) (bool, error) {
	profile, err := s.profiles.ByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.UserID == userID, nil
}

func forbiddenIfMismatch(err error) error {
	if errors.Is(err, model.ErrTokenMismatch) {
		return apierror.Forbidden(msgInvalidToken)
	}
	return err
}
