package session

import (
	"testing"

	"event-rsvp/internal/models"
)

func TestPrincipal(t *testing.T) {
	guest := &models.GuestIdentity{Name: "Maria Clara", Contact: "(11) 91234-5678"}
	tests := []struct {
		name  string
		state *State
		want  Principal
	}{
		{"nil state", nil, Anonymous},
		{"empty", &State{}, Anonymous},
		{"guest", &State{Guest: guest}, Guest},
		{"admin only", &State{IsAdmin: true}, Admin},
		{"admin with guest", &State{Guest: guest, IsAdmin: true}, Admin},
	}
	for _, tt := range tests {
		if got := tt.state.Principal(); got != tt.want {
			t.Errorf("%s: principal = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGuestName(t *testing.T) {
	var s *State
	if s.GuestName() != "" {
		t.Fatal("expected empty name for nil state")
	}
	s = &State{Guest: &models.GuestIdentity{Name: "Ana"}}
	if s.GuestName() != "Ana" {
		t.Fatalf("name = %q", s.GuestName())
	}
}
