package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"yggdrasil-server/internal/model"
	"yggdrasil-server/pkg/apierror"
)

// JoinService implements the server-join handshake. A client with a valid
// session declares intent to join a game server; the game server then
// confirms the declaration within the ticket's lifetime.
type JoinService struct {
	profiles ProfileStore
	sessions SessionStore
	tickets  TicketStore
}

func NewJoinService(profiles ProfileStore, sessions SessionStore, tickets TicketStore) *JoinService {
	return &JoinService{profiles: profiles, sessions: sessions, tickets: tickets}
}

// Join records a ticket for (serverID, profileID). The session's bound
// selection is authoritative: a caller cannot join on behalf of a profile
// its session has not selected.
func (j *JoinService) Join(ctx context.Context, accessToken, profileID, serverID string) error {
	session, err := j.sessions.FindByAccessToken(ctx, accessToken)
	if err != nil {
		return forbiddenIfMismatch(err)
	}
	if session.SelectedProfileID == "" || session.SelectedProfileID != profileID {
		return apierror.Forbidden(msgInvalidToken)
	}

	ticket := model.JoinTicket{
		ServerID:    serverID,
		ProfileID:   profileID,
		AccessToken: accessToken,
		IssuedAt:    time.Now().UTC(),
	}
	if err := j.tickets.Put(ctx, ticket); err != nil {
		return err
	}

	slog.Info("join ticket issued", "server_id", serverID, "profile_id", profileID)
	return nil
}

// HasJoined confirms a pending join. Absence of a profile or of a live
// ticket is a silent not-found, never an error: the endpoint must not leak
// whether a name or server id exists. The ticket stays in place, so repeated
// reads within its lifetime succeed.
func (j *JoinService) HasJoined(ctx context.Context, serverID, username string) (model.Profile, error) {
	profile, err := j.profiles.ByName(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return model.Profile{}, model.ErrTicketNotFound
		}
		return model.Profile{}, err
	}

	if _, err := j.tickets.Get(ctx, serverID, profile.ID); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// StartCleanupTicker periodically drops expired tickets.
func (j *JoinService) StartCleanupTicker(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := j.tickets.CleanExpired(ctx); err != nil {
				slog.Warn("ticket cleanup failed", "error", err.Error())
			}
		}
	}
}
