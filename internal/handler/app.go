package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"event-rsvp/internal/admin"
	"event-rsvp/internal/apperr"
	"event-rsvp/internal/attendance"
	"event-rsvp/internal/event"
	"event-rsvp/internal/gifts"
	"event-rsvp/internal/identity"
	"event-rsvp/internal/models"
	"event-rsvp/internal/session"
)

// Notifier delivers a text message to a guest's phone.
type Notifier interface {
	SendMessage(phoneNumber, message string) error
}

// Deps are the services the App composes.
type Deps struct {
	Identity   *identity.Resolver
	Gifts      *gifts.Catalog
	Attendance *attendance.Register
	Event      *event.Store
	Admin      *admin.Gate
	// Notifier is optional.
	Notifier Notifier
	Log      zerolog.Logger
	Now      func() time.Time
}

// App is the front end's single entry point. It owns the session state,
// runs one operation at a time and applies the access policy: ownership
// for cancellations, the RSVP deadline, and admin-only operations.
type App struct {
	mu    sync.Mutex
	state session.State

	identity   *identity.Resolver
	gifts      *gifts.Catalog
	attendance *attendance.Register
	event      *event.Store
	admin      *admin.Gate
	notifier   Notifier
	log        zerolog.Logger
	now        func() time.Time
}

// NewApp creates an App with an empty session. Call Hydrate to restore
// the previous session.
func NewApp(deps Deps) *App {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &App{
		identity:   deps.Identity,
		gifts:      deps.Gifts,
		attendance: deps.Attendance,
		event:      deps.Event,
		admin:      deps.Admin,
		notifier:   deps.Notifier,
		log:        deps.Log.With().Str("component", "app").Logger(),
		now:        now,
	}
}

// Hydrate restores the guest identity and admin capability from storage.
func (a *App) Hydrate(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.identity.Restore(ctx, &a.state); err != nil {
		return fmt.Errorf("failed to restore identity: %w", err)
	}
	if err := a.admin.Restore(ctx, &a.state); err != nil {
		return fmt.Errorf("failed to restore admin session: %w", err)
	}
	return nil
}

// Principal returns who is acting.
func (a *App) Principal() session.Principal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Principal()
}

// CurrentGuest returns a copy of the session identity, or nil.
func (a *App) CurrentGuest() *models.GuestIdentity {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Guest == nil {
		return nil
	}
	g := *a.state.Guest
	return &g
}

// IsAdmin reports whether the admin capability is held.
func (a *App) IsAdmin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.IsAdmin
}

// LookupContact reports the stored name for a contact being typed.
func (a *App) LookupContact(ctx context.Context, contact string) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity.Lookup(ctx, contact)
}

// Identify establishes the guest identity.
func (a *App) Identify(ctx context.Context, req models.IdentityRequest) (identity.Resolution, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity.Submit(ctx, &a.state, req)
}

// SignOut forgets the guest identity for this session.
func (a *App) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity.SignOut(ctx, &a.state)
}

// Login grants the admin capability or fails with an auth failure.
func (a *App) Login(ctx context.Context, passphrase string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ok, err := a.admin.Authenticate(ctx, &a.state, passphrase)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.AuthFailure("senha incorreta")
	}
	return nil
}

// Logout drops the admin capability.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admin.Revoke(ctx, &a.state)
}

func (a *App) requireAdmin() error {
	if !a.state.IsAdmin {
		return apperr.Authorization("acesso restrito ao administrador")
	}
	return nil
}
