// Package identity establishes and recognizes the guest acting in a
// session. A contact with a prior attendance record always resolves to the
// name stored with that record, so one guest cannot appear twice under
// different names.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"event-rsvp/internal/models"
	"event-rsvp/internal/phone"
	"event-rsvp/internal/session"
	"event-rsvp/internal/storage"
	"event-rsvp/internal/validate"
)

// RecordFinder looks up the attendance record for a contact.
type RecordFinder interface {
	Find(ctx context.Context, contact string) (models.AttendanceRecord, bool, error)
}

// Resolution is the outcome of an identity submission.
type Resolution struct {
	Identity   models.GuestIdentity
	Recognized bool
}

// Resolver owns the current guest identity document.
type Resolver struct {
	store   storage.Store
	records RecordFinder
	log     zerolog.Logger
}

func NewResolver(store storage.Store, records RecordFinder, log zerolog.Logger) *Resolver {
	return &Resolver{
		store:   store,
		records: records,
		log:     log.With().Str("component", "identity").Logger(),
	}
}

// Lookup returns the stored name for contact when the contact already has
// an attendance record. Incomplete contacts are never recognized.
func (r *Resolver) Lookup(ctx context.Context, contact string) (string, bool, error) {
	contact = strings.TrimSpace(contact)
	if !phone.Valid(contact) {
		return "", false, nil
	}
	rec, ok, err := r.records.Find(ctx, contact)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up contact: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return rec.Name, true, nil
}

// Submit validates and establishes the session identity, replacing any
// previous one. For a recognized contact the stored name is used no matter
// what name was supplied. On failure neither state nor storage changes.
func (r *Resolver) Submit(ctx context.Context, state *session.State, req models.IdentityRequest) (Resolution, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Contact = strings.TrimSpace(req.Contact)

	storedName, recognized, err := r.Lookup(ctx, req.Contact)
	if err != nil {
		return Resolution{}, err
	}
	if recognized {
		req.Name = storedName
	}

	if err := validate.Struct(req); err != nil {
		return Resolution{}, err
	}

	ident := models.GuestIdentity{Name: req.Name, Contact: req.Contact}
	doc := models.SessionIdentity{Name: ident.Name, Phone: ident.Contact}
	if err := storage.Save(ctx, r.store, storage.KeyGuest, doc); err != nil {
		return Resolution{}, fmt.Errorf("failed to save identity: %w", err)
	}
	state.Guest = &ident

	r.log.Info().Str("contact", ident.Contact).Bool("recognized", recognized).Msg("Guest identified")
	return Resolution{Identity: ident, Recognized: recognized}, nil
}

// SignOut clears the session identity. Attendance history is kept.
func (r *Resolver) SignOut(ctx context.Context, state *session.State) error {
	if err := r.store.Delete(ctx, storage.KeyGuest); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	state.Guest = nil
	return nil
}

// Restore hydrates the session identity from storage. A missing or
// unusable document leaves the session without a guest.
func (r *Resolver) Restore(ctx context.Context, state *session.State) error {
	doc, err := storage.Load(ctx, r.store, storage.KeyGuest, func() *models.SessionIdentity { return nil }, r.log)
	if err != nil {
		return err
	}
	if doc == nil || strings.TrimSpace(doc.Name) == "" || !phone.Valid(doc.Phone) {
		state.Guest = nil
		return nil
	}
	ident := doc.Identity()
	state.Guest = &ident
	return nil
}
