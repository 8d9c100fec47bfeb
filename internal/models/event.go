package models

// EventConfig holds the event metadata shown to guests. RSVPDeadline uses
// the 2006-01-02 layout.
type EventConfig struct {
	EventDate          string `json:"eventDate" validate:"required"`
	EventTime          string `json:"eventTime" validate:"required"`
	RSVPDeadline       string `json:"rsvpDeadline" validate:"required"`
	Location           string `json:"location" validate:"required,min=5"`
	LocationLink       string `json:"locationLink,omitempty" validate:"omitempty,url"`
	GoogleCalendarLink string `json:"googleCalendarLink" validate:"omitempty,url"`
}
