// Package session holds the state of the acting principal. The composing
// layer owns one State and passes it to the services that need it.
package session

import "event-rsvp/internal/models"

// Principal is the kind of actor performing an operation.
type Principal string

const (
	Anonymous Principal = "anonymous"
	Guest     Principal = "guest"
	Admin     Principal = "admin"
)

// State is the session: an optional guest identity and the admin
// capability flag. The two are independent.
type State struct {
	Guest   *models.GuestIdentity
	IsAdmin bool
}

// Principal derives the acting principal. Admin capability wins over a
// guest identity.
func (s *State) Principal() Principal {
	switch {
	case s == nil:
		return Anonymous
	case s.IsAdmin:
		return Admin
	case s.Guest != nil:
		return Guest
	default:
		return Anonymous
	}
}

// HasGuest reports whether a guest identity is established.
func (s *State) HasGuest() bool {
	return s != nil && s.Guest != nil
}

// GuestName returns the guest's name or "" when there is none.
func (s *State) GuestName() string {
	if !s.HasGuest() {
		return ""
	}
	return s.Guest.Name
}
