package attendance

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

const (
	maria = "(11) 91234-5678"
	joao  = "(21) 98765-4321"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestRegister(t *testing.T) (*Register, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := &stepClock{t: time.Date(2026, time.November, 1, 12, 0, 0, 0, time.UTC)}
	return NewRegister(store, zerolog.Nop(), WithClock(clock.now)), store
}

func TestSubmitAppendsNewContact(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegister(t)

	rec, err := reg.Submit(ctx, models.AttendanceRequest{
		Contact: maria, Name: "Maria Clara", Attending: true, Adults: 2, Children: 1,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.TotalGuests != 3 {
		t.Fatalf("total guests = %d, want 3", rec.TotalGuests)
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
}

func TestSubmitUpsertsByContact(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegister(t)

	first, err := reg.Submit(ctx, models.AttendanceRequest{Contact: maria, Name: "Maria Clara", Attending: true, Adults: 2})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := reg.Submit(ctx, models.AttendanceRequest{Contact: joao, Name: "João", Attending: false}); err != nil {
		t.Fatalf("second contact: %v", err)
	}
	last, err := reg.Submit(ctx, models.AttendanceRequest{Contact: maria, Name: "Maria Clara", Attending: true, Adults: 1, Children: 2})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !last.SubmittedAt.After(first.SubmittedAt) {
		t.Fatalf("expected fresh timestamp, got %v after %v", last.SubmittedAt, first.SubmittedAt)
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Contact != maria {
		t.Fatalf("expected maria to keep position 0, got %q", records[0].Contact)
	}
	got := records[0]
	if got.AdultsCount != 1 || got.ChildrenCount != 2 || got.TotalGuests != 3 || !got.SubmittedAt.Equal(last.SubmittedAt) {
		t.Fatalf("record = %+v, want %+v", got, last)
	}
}

func TestSubmitAtMostOneRecordPerContact(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegister(t)

	submissions := []models.AttendanceRequest{
		{Contact: maria, Name: "Maria Clara", Attending: true, Adults: 1},
		{Contact: joao, Name: "João", Attending: true, Adults: 3},
		{Contact: maria, Name: "Maria Clara", Attending: false},
		{Contact: joao, Name: "João", Attending: true, Adults: 2, Children: 2},
		{Contact: maria, Name: "Maria Clara", Attending: true, Adults: 4, Children: 1},
	}
	for _, req := range submissions {
		if _, err := reg.Submit(ctx, req); err != nil {
			t.Fatalf("submit %+v: %v", req, err)
		}
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	seen := map[string]int{}
	for _, rec := range records {
		seen[rec.Contact]++
	}
	for contact, n := range seen {
		if n != 1 {
			t.Fatalf("contact %s has %d records", contact, n)
		}
	}
	rec, ok, err := reg.Find(ctx, maria)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if !rec.Attending || rec.AdultsCount != 4 || rec.ChildrenCount != 1 || rec.TotalGuests != 5 {
		t.Fatalf("maria record = %+v", rec)
	}
}

func TestSubmitValidatesPartySizeWhenAttending(t *testing.T) {
	ctx := context.Background()
	reg, store := newTestRegister(t)

	tests := []struct {
		name  string
		req   models.AttendanceRequest
		field string
	}{
		{"zero adults", models.AttendanceRequest{Contact: maria, Name: "Maria", Attending: true, Adults: 0}, "adults"},
		{"eleven adults", models.AttendanceRequest{Contact: maria, Name: "Maria", Attending: true, Adults: 11}, "adults"},
		{"negative children", models.AttendanceRequest{Contact: maria, Name: "Maria", Attending: true, Adults: 1, Children: -1}, "children"},
		{"eleven children", models.AttendanceRequest{Contact: maria, Name: "Maria", Attending: true, Adults: 1, Children: 11}, "children"},
		{"bad contact", models.AttendanceRequest{Contact: "11912345678", Name: "Maria", Attending: true, Adults: 1}, "contact"},
	}
	for _, tt := range tests {
		_, err := reg.Submit(ctx, tt.req)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tt.name, err)
		}
		if _, ok := apperr.FieldMessages(err)[tt.field]; !ok {
			t.Fatalf("%s: expected message for %q, got %v", tt.name, tt.field, apperr.FieldMessages(err))
		}
	}

	if _, ok, _ := store.Get(ctx, storage.KeyAttendance); ok {
		t.Fatal("failed submissions must not write")
	}
}

func TestSubmitDeclineIgnoresPartySize(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegister(t)

	rec, err := reg.Submit(ctx, models.AttendanceRequest{Contact: maria, Name: "Maria", Attending: false, Adults: 0, Children: 50})
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if rec.AdultsCount != 0 || rec.ChildrenCount != 0 || rec.TotalGuests != 0 {
		t.Fatalf("decline record = %+v, want zero counts", rec)
	}
}

func TestListFallsBackOnMalformedDocument(t *testing.T) {
	ctx := context.Background()
	reg, store := newTestRegister(t)
	if err := store.Put(ctx, storage.KeyAttendance, []byte(`{"oops":`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
}

func TestSummarize(t *testing.T) {
	records := []models.AttendanceRecord{
		{Attending: true, AdultsCount: 2, ChildrenCount: 1, TotalGuests: 3},
		{Attending: true, AdultsCount: 1, ChildrenCount: 0, TotalGuests: 1},
		{Attending: false},
	}
	got := Summarize(records)
	want := models.AttendanceSummary{TotalAttendees: 4, TotalAdults: 3, TotalChildren: 1, TotalDeclines: 1, Responses: 3}
	if got != want {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
}

func TestSummarizeIgnoresCountsOfDeclines(t *testing.T) {
	got := Summarize([]models.AttendanceRecord{{Attending: false, AdultsCount: 5, TotalGuests: 5}})
	if got.TotalAttendees != 0 || got.TotalAdults != 0 || got.TotalDeclines != 1 {
		t.Fatalf("summary = %+v", got)
	}
}

var errDiskFull = errors.New("disk full")

// failingStore reads from the wrapped store and refuses every write.
type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) Put(context.Context, string, []byte) error { return errDiskFull }
func (failingStore) Delete(context.Context, string) error { return errDiskFull }

func TestSubmitLeavesRecordsWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	reg, mem := newTestRegister(t)
	first, err := reg.Submit(ctx, models.AttendanceRequest{
		Contact: maria, Name: "Maria Clara", Attending: true, Adults: 2, Children: 1,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	before, _, _ := mem.Get(ctx, storage.KeyAttendance)

	failing := NewRegister(failingStore{mem}, zerolog.Nop())
	_, err = failing.Submit(ctx, models.AttendanceRequest{
		Contact: maria, Name: "Maria Clara", Attending: false,
	})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("submit: expected wrapped write error, got %v", err)
	}
	_, err = failing.Submit(ctx, models.AttendanceRequest{
		Contact: joao, Name: "João Pedro", Attending: true, Adults: 1,
	})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("submit new contact: expected wrapped write error, got %v", err)
	}

	after, _, _ := mem.Get(ctx, storage.KeyAttendance)
	if string(before) != string(after) {
		t.Fatalf("records changed after failed write:\n%s", after)
	}
	rec, found, err := reg.Find(ctx, maria)
	if err != nil || !found {
		t.Fatalf("find: found=%v err=%v", found, err)
	}
	if !rec.Attending || rec.TotalGuests != first.TotalGuests {
		t.Fatalf("record = %+v, want the original submission", rec)
	}
}
