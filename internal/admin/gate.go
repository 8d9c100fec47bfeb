// Package admin grants the admin capability to whoever knows the shared
// passphrase.
package admin

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"event-rsvp/internal/session"
	"event-rsvp/internal/storage"
)

const marker = "true"

// Gate checks the passphrase and keeps the admin session marker.
type Gate struct {
	store storage.Store
	hash  []byte
	log   zerolog.Logger
}

// NewGate hashes passphrase with the given bcrypt cost. A cost of 0 uses
// bcrypt.DefaultCost.
func NewGate(store storage.Store, passphrase string, cost int, log zerolog.Logger) (*Gate, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("admin passphrase is required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin passphrase: %w", err)
	}
	return &Gate{
		store: store,
		hash:  hash,
		log:   log.With().Str("component", "admin").Logger(),
	}, nil
}

// Authenticate grants the capability when passphrase matches. A mismatch
// returns false and changes nothing; there is no lockout.
func (g *Gate) Authenticate(ctx context.Context, state *session.State, passphrase string) (bool, error) {
	if bcrypt.CompareHashAndPassword(g.hash, []byte(passphrase)) != nil {
		g.log.Warn().Msg("Admin passphrase mismatch")
		return false, nil
	}
	if err := storage.Save(ctx, g.store, storage.KeyAdmin, marker); err != nil {
		return false, fmt.Errorf("failed to save admin marker: %w", err)
	}
	state.IsAdmin = true
	g.log.Info().Msg("Admin session started")
	return true, nil
}

// Revoke drops the capability and its marker.
func (g *Gate) Revoke(ctx context.Context, state *session.State) error {
	if err := g.store.Delete(ctx, storage.KeyAdmin); err != nil {
		return fmt.Errorf("failed to clear admin marker: %w", err)
	}
	state.IsAdmin = false
	return nil
}

// Restore sets the capability from the stored marker.
func (g *Gate) Restore(ctx context.Context, state *session.State) error {
	value, err := storage.Load(ctx, g.store, storage.KeyAdmin, func() string { return "" }, g.log)
	if err != nil {
		return err
	}
	state.IsAdmin = value == marker
	return nil
}
