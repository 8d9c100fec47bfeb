// Package attendance keeps the RSVP records, one per guest contact.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/models"
	"event-rsvp/internal/storage"
	"event-rsvp/internal/validate"
)

// Register owns the attendance records document.
type Register struct {
	store storage.Store
	log   zerolog.Logger
	now   func() time.Time
}

// Option configures a Register.
type Option func(*Register)

// WithClock overrides the clock used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(r *Register) { r.now = now }
}

// NewRegister creates a register over the given store.
func NewRegister(store storage.Store, log zerolog.Logger, opts ...Option) *Register {
	r := &Register{
		store: store,
		log:   log.With().Str("component", "attendance").Logger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func emptyRecords() []models.AttendanceRecord {
	return make([]models.AttendanceRecord, 0)
}

// List returns all records in submission order.
func (r *Register) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	return storage.Load(ctx, r.store, storage.KeyAttendance, emptyRecords, r.log)
}

// Find returns the record stored for contact.
func (r *Register) Find(ctx context.Context, contact string) (models.AttendanceRecord, bool, error) {
	records, err := r.List(ctx)
	if err != nil {
		return models.AttendanceRecord{}, false, err
	}
	contact = strings.TrimSpace(contact)
	for _, rec := range records {
		if rec.Contact == contact {
			return rec, true, nil
		}
	}
	return models.AttendanceRecord{}, false, nil
}

// Submit validates the request and upserts the record for its contact. An
// existing record is replaced in place; a new contact is appended.
func (r *Register) Submit(ctx context.Context, req models.AttendanceRequest) (models.AttendanceRecord, error) {
	req.Contact = strings.TrimSpace(req.Contact)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return models.AttendanceRecord{}, err
	}

	records, err := r.List(ctx)
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	record := models.AttendanceRecord{
		Contact:     req.Contact,
		Name:        req.Name,
		Attending:   req.Attending,
		SubmittedAt: r.now().UTC(),
	}
	if req.Attending {
		record.AdultsCount = req.Adults
		record.ChildrenCount = req.Children
		record.TotalGuests = req.Adults + req.Children
	}

	replaced := false
	for i := range records {
		if records[i].Contact == record.Contact {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}

	if err := storage.Save(ctx, r.store, storage.KeyAttendance, records); err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	r.log.Info().
		Str("contact", record.Contact).
		Bool("attending", record.Attending).
		Int("total_guests", record.TotalGuests).
		Bool("replaced", replaced).
		Msg("Attendance recorded")
	return record, nil
}

func validateRequest(req models.AttendanceRequest) error {
	fields := map[string]string{}
	collect := func(err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Code == apperr.CodeValidation {
			for k, v := range appErr.Fields {
				fields[k] = v
			}
			return nil
		}
		return err
	}

	if err := collect(validate.Struct(req)); err != nil {
		return err
	}
	// Party size only matters for guests who are coming.
	if req.Attending {
		if err := collect(validate.Field("adults", req.Adults, "min=1,max=10")); err != nil {
			return err
		}
		if err := collect(validate.Field("children", req.Children, "min=0,max=10")); err != nil {
			return err
		}
	}

	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}
	return nil
}

// Summarize aggregates records. Counts of declining guests are ignored.
func Summarize(records []models.AttendanceRecord) models.AttendanceSummary {
	var s models.AttendanceSummary
	for _, rec := range records {
		s.Responses++
		if !rec.Attending {
			s.TotalDeclines++
			continue
		}
		s.TotalAttendees += rec.TotalGuests
		s.TotalAdults += rec.AdultsCount
		s.TotalChildren += rec.ChildrenCount
	}
	return s
}
