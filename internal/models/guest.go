package models

// GuestIdentity represents the guest acting in the current session.
// Contact is the masked phone number and is the durable key for the guest.
type GuestIdentity struct {
	Name    string `json:"name"`
	Contact string `json:"phone"`
}

// SessionIdentity is the persisted shape of the current guest identity.
type SessionIdentity struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// Identity converts the stored document back into a GuestIdentity.
func (s SessionIdentity) Identity() GuestIdentity {
	return GuestIdentity{Name: s.Name, Contact: s.Phone}
}

// IdentityRequest carries the identity form as submitted by the guest.
type IdentityRequest struct {
	Name    string `json:"name" validate:"required,min=3"`
	Contact string `json:"phone" validate:"required,phone"`
}
