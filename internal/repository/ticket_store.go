package repository

import (
	"context"
	"sync"
	"time"

	"yggdrasil-server/internal/model"
)

type ticketKey struct {
	serverID  string
	profileID string
}

// TicketStore holds join tickets in memory. Tickets live for a single login
// handshake, so surviving a restart buys nothing: a launcher that raced a
// restart simply joins again.
type TicketStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	tickets map[ticketKey]model.JoinTicket
	nowFunc func() time.Time
}

func NewTicketStore(ttl time.Duration) *TicketStore {
	return &TicketStore{
		ttl:     ttl,
		tickets: map[ticketKey]model.JoinTicket{},
		nowFunc: time.Now,
	}
}

// Put overwrites any previous ticket for the same (server id, profile id)
// pair: last writer wins.
func (t *TicketStore) Put(_ context.Context, ticket model.JoinTicket) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tickets[ticketKey{serverID: ticket.ServerID, profileID: ticket.ProfileID}] = ticket
	return nil
}

func (t *TicketStore) Get(_ context.Context, serverID, profileID string) (model.JoinTicket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ticket, ok := t.tickets[ticketKey{serverID: serverID, profileID: profileID}]
	if !ok || t.expired(ticket) {
		return model.JoinTicket{}, model.ErrTicketNotFound
	}
	return ticket, nil
}

func (t *TicketStore) CleanExpired(_ context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed int64
	for key, ticket := range t.tickets {
		if t.expired(ticket) {
			delete(t.tickets, key)
			removed++
		}
	}
	return removed, nil
}

func (t *TicketStore) expired(ticket model.JoinTicket) bool {
	return t.nowFunc().Sub(ticket.IssuedAt) >= t.ttl
}
