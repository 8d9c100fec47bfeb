package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/models"
	"event-rsvp/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	return NewStore(mem, zerolog.Nop(), time.UTC), mem
}

func validConfig() models.EventConfig {
	return models.EventConfig{
		EventDate:    "2026-11-28",
		EventTime:    "15:30",
		RSVPDeadline: "2026-11-20",
		Location:     "Chácara Recanto Verde",
		LocationLink: "https://maps.google.com/?q=Recanto+Verde",
	}
}

func TestGetReturnsDefault(t *testing.T) {
	s, _ := newTestStore(t)
	cfg, err := s.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want default", cfg)
	}
}

func TestGetFallsBackOnIncompleteDocument(t *testing.T) {
	ctx := context.Background()
	for _, stored := range []string{`null`, `{}`, `{"eventDate":"2026-11-28","location":"Chácara Recanto Verde"}`} {
		s, mem := newTestStore(t)
		if err := mem.Put(ctx, storage.KeyEventConfig, []byte(stored)); err != nil {
			t.Fatalf("put: %v", err)
		}
		cfg, err := s.Get(ctx)
		if err != nil {
			t.Fatalf("get %s: %v", stored, err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("get %s: cfg = %+v, want default", stored, cfg)
		}

		past, err := s.IsPastDeadline(ctx, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("is past deadline: %v", err)
		}
		if !past {
			t.Errorf("get %s: default deadline should be closed in 2027", stored)
		}
	}
}

func TestUpdateReplacesConfiguration(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if _, err := s.Update(ctx, validConfig()); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != validConfig() {
		t.Fatalf("cfg = %+v, want %+v", got, validConfig())
	}
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	tests := []struct {
		name  string
		edit  func(*models.EventConfig)
		field string
	}{
		{"empty date", func(c *models.EventConfig) { c.EventDate = " " }, "eventDate"},
		{"empty time", func(c *models.EventConfig) { c.EventTime = "" }, "eventTime"},
		{"empty deadline", func(c *models.EventConfig) { c.RSVPDeadline = "" }, "rsvpDeadline"},
		{"short location", func(c *models.EventConfig) { c.Location = "Sala" }, "location"},
		{"bad location link", func(c *models.EventConfig) { c.LocationLink = "rua das flores" }, "locationLink"},
	}
	for _, tt := range tests {
		cfg := validConfig()
		tt.edit(&cfg)
		_, err := s.Update(ctx, cfg)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tt.name, err)
		}
		if _, ok := apperr.FieldMessages(err)[tt.field]; !ok {
			t.Fatalf("%s: expected %q message, got %v", tt.name, tt.field, apperr.FieldMessages(err))
		}
	}
	if _, ok, _ := mem.Get(ctx, storage.KeyEventConfig); ok {
		t.Fatal("invalid updates must not write")
	}
}

func TestUpdateWithoutLocationLink(t *testing.T) {
	s, _ := newTestStore(t)
	cfg := validConfig()
	cfg.LocationLink = ""
	if _, err := s.Update(context.Background(), cfg); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestIsPastDeadline(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	if _, err := s.Update(ctx, validConfig()); err != nil {
		t.Fatalf("update: %v", err)
	}

	tests := []struct {
		now  time.Time
		want bool
	}{
		{time.Date(2026, time.November, 19, 10, 0, 0, 0, time.UTC), false},
		{time.Date(2026, time.November, 20, 23, 59, 0, 0, time.UTC), false},
		{time.Date(2026, time.November, 21, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		got, err := s.IsPastDeadline(ctx, tt.now)
		if err != nil {
			t.Fatalf("is past deadline: %v", err)
		}
		if got != tt.want {
			t.Errorf("IsPastDeadline(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestIsPastDeadlineUnparseable(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	cfg := validConfig()
	cfg.RSVPDeadline = "até o fim do mês"
	if _, err := s.Update(ctx, cfg); err != nil {
		t.Fatalf("update: %v", err)
	}
	past, err := s.IsPastDeadline(ctx, time.Now())
	if err != nil || past {
		t.Fatalf("past = %v, err = %v", past, err)
	}
}
