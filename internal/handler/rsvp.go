package handler

import (
	"context"
	"fmt"

	"event-rsvp/internal/apperr"
	"event-rsvp/internal/attendance"
	"event-rsvp/internal/models"
)

// RSVPForm is what the guest fills in; identity comes from the session.
type RSVPForm struct {
	Attending bool
	Adults    int
	Children  int
}

// Event returns the event configuration.
func (a *App) Event(ctx context.Context) (models.EventConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.event.Get(ctx)
}

// UpdateEvent replaces the event configuration. Admin only.
func (a *App) UpdateEvent(ctx context.Context, cfg models.EventConfig) (models.EventConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireAdmin(); err != nil {
		return models.EventConfig{}, err
	}
	return a.event.Update(ctx, cfg)
}

// RSVPOpen reports whether guests can still submit an RSVP.
func (a *App) RSVPOpen(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	past, err := a.event.IsPastDeadline(ctx, a.now())
	if err != nil {
		return false, err
	}
	return !past, nil
}

// MyRSVP returns the current guest's record, if any.
func (a *App) MyRSVP(ctx context.Context) (models.AttendanceRecord, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Guest == nil {
		return models.AttendanceRecord{}, false, nil
	}
	return a.attendance.Find(ctx, a.state.Guest.Contact)
}

// SubmitRSVP records the current guest's attendance. Submissions after the
// deadline are refused. A confirmation is sent when a notifier is set;
// delivery problems are logged and do not fail the submission.
func (a *App) SubmitRSVP(ctx context.Context, form RSVPForm) (models.AttendanceRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	guest := a.state.Guest
	if guest == nil {
		return models.AttendanceRecord{}, apperr.Authorization("identifique-se para confirmar presença")
	}

	cfg, err := a.event.Get(ctx)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	past, err := a.event.IsPastDeadline(ctx, a.now())
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	if past {
		return models.AttendanceRecord{}, apperr.DeadlinePassed(
			fmt.Sprintf("o prazo para confirmar presença terminou em %s", cfg.RSVPDeadline))
	}

	rec, err := a.attendance.Submit(ctx, models.AttendanceRequest{
		Contact:   guest.Contact,
		Name:      guest.Name,
		Attending: form.Attending,
		Adults:    form.Adults,
		Children:  form.Children,
	})
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	a.notify(rec, cfg)
	return rec, nil
}

// GuestList returns all RSVP records and their summary. Admin only.
func (a *App) GuestList(ctx context.Context) ([]models.AttendanceRecord, models.AttendanceSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireAdmin(); err != nil {
		return nil, models.AttendanceSummary{}, err
	}
	records, err := a.attendance.List(ctx)
	if err != nil {
		return nil, models.AttendanceSummary{}, err
	}
	return records, attendance.Summarize(records), nil
}

func (a *App) notify(rec models.AttendanceRecord, cfg models.EventConfig) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.SendMessage(rec.Contact, ConfirmationMessage(rec, cfg)); err != nil {
		a.log.Error().Err(err).Str("contact", rec.Contact).Msg("Failed to send RSVP confirmation")
	}
}

// ConfirmationMessage is the text sent to a guest after an RSVP.
func ConfirmationMessage(rec models.AttendanceRecord, cfg models.EventConfig) string {
	if !rec.Attending {
		return fmt.Sprintf(
			"Olá, %s! Recebemos sua resposta. Que pena que você não poderá ir, sentiremos sua falta! 💕",
			rec.Name,
		)
	}
	msg := fmt.Sprintf(
		"🎉 Olá, %s! Sua presença está confirmada.\n\n"+
			"👥 Convidados: %d (%d adultos, %d crianças)\n"+
			"📅 Data: %s às %s\n"+
			"📍 Local: %s",
		rec.Name, rec.TotalGuests, rec.AdultsCount, rec.ChildrenCount,
		cfg.EventDate, cfg.EventTime, cfg.Location,
	)
	if cfg.LocationLink != "" {
		msg += "\n🗺️ " + cfg.LocationLink
	}
	return msg
}
