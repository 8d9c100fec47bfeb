package models

import "time"

// AttendanceRecord is the latest RSVP submitted for a contact.
type AttendanceRecord struct {
	Contact       string    `json:"contact"`
	Name          string    `json:"name"`
	Attending     bool      `json:"attending"`
	AdultsCount   int       `json:"adultsCount"`
	ChildrenCount int       `json:"childrenCount"`
	TotalGuests   int       `json:"totalGuests"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// AttendanceRequest is the RSVP form. Party size bounds only apply when
// the guest is attending.
type AttendanceRequest struct {
	Contact   string `json:"contact" validate:"required,phone"`
	Name      string `json:"name" validate:"required"`
	Attending bool   `json:"attending"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
}

// AttendanceSummary aggregates the attendance records. It is always
// derived from the current records and never stored.
type AttendanceSummary struct {
	TotalAttendees int `json:"totalAttendees"`
	TotalAdults    int `json:"totalAdults"`
	TotalChildren  int `json:"totalChildren"`
	TotalDeclines  int `json:"totalDeclines"`
	Responses      int `json:"responses"`
}
