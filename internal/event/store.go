// Package event keeps the event configuration: date, time, RSVP deadline
// and location.
package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"event-rsvp/internal/models"
	"event-rsvp/internal/storage"
	"event-rsvp/internal/validate"
)

// DeadlineLayout is the layout of EventConfig.RSVPDeadline.
const DeadlineLayout = "2006-01-02"

// DefaultConfig is used until an admin saves a configuration.
func DefaultConfig() models.EventConfig {
	return models.EventConfig{
		EventDate:          "2026-12-12",
		EventTime:          "16:00",
		RSVPDeadline:       "2026-12-01",
		Location:           "Salão de Festas Jardim das Flores, Rua das Acácias, 120 - São Paulo",
		LocationLink:       "https://maps.google.com/?q=Rua+das+Acacias+120+Sao+Paulo",
		GoogleCalendarLink: "https://calendar.google.com/calendar/render?action=TEMPLATE&text=Ch%C3%A1+de+Casa+Nova&dates=20261212T190000Z/20261212T230000Z",
	}
}

// Store owns the event configuration document.
type Store struct {
	store storage.Store
	log   zerolog.Logger
	loc   *time.Location
}

// NewStore creates the configuration store. Deadlines are interpreted in
// loc; nil means the local time zone.
func NewStore(store storage.Store, log zerolog.Logger, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		store: store,
		log:   log.With().Str("component", "event").Logger(),
		loc:   loc,
	}
}

// Get returns the current configuration.
func (s *Store) Get(ctx context.Context) (models.EventConfig, error) {
	return storage.LoadChecked(ctx, s.store, storage.KeyEventConfig, DefaultConfig, usableConfig, s.log)
}

// usableConfig rejects a stored configuration Update would not have
// accepted, such as one missing its date or deadline.
func usableConfig(cfg models.EventConfig) bool {
	return validate.Struct(cfg) == nil
}

// Update validates cfg and replaces the stored configuration with it.
func (s *Store) Update(ctx context.Context, cfg models.EventConfig) (models.EventConfig, error) {
	cfg.EventDate = strings.TrimSpace(cfg.EventDate)
	cfg.EventTime = strings.TrimSpace(cfg.EventTime)
	cfg.RSVPDeadline = strings.TrimSpace(cfg.RSVPDeadline)
	cfg.Location = strings.TrimSpace(cfg.Location)
	cfg.LocationLink = strings.TrimSpace(cfg.LocationLink)
	cfg.GoogleCalendarLink = strings.TrimSpace(cfg.GoogleCalendarLink)
	if err := validate.Struct(cfg); err != nil {
		return models.EventConfig{}, err
	}

	if err := storage.Save(ctx, s.store, storage.KeyEventConfig, cfg); err != nil {
		return models.EventConfig{}, fmt.Errorf("failed to save event configuration: %w", err)
	}
	s.log.Info().Str("date", cfg.EventDate).Str("deadline", cfg.RSVPDeadline).Msg("Event configuration updated")
	return cfg, nil
}

// IsPastDeadline reports whether now is after the last day for RSVPs. The
// deadline day itself is still open. A deadline that cannot be parsed
// never closes RSVPs.
func (s *Store) IsPastDeadline(ctx context.Context, now time.Time) (bool, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return s.pastDeadline(cfg.RSVPDeadline, now), nil
}

func (s *Store) pastDeadline(deadline string, now time.Time) bool {
	if t, err := time.Parse(time.RFC3339, deadline); err == nil {
		return now.After(t)
	}
	day, err := time.ParseInLocation(DeadlineLayout, deadline, s.loc)
	if err != nil {
		s.log.Warn().Str("deadline", deadline).Msg("Unparseable RSVP deadline")
		return false
	}
	return !now.Before(day.AddDate(0, 0, 1))
}
