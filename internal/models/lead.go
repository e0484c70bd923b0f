// Package models holds the persisted CRM records.
package models

import "time"

// Lead status values.
const (
	LeadStatusNew       = "NEW"
	LeadStatusContacted = "CONTACTED"
	LeadStatusQuoted    = "QUOTED"
	LeadStatusWon       = "WON"
	LeadStatusLost      = "LOST"
)

// Lead is a sales lead captured by a travel agent. A lead seeds the
// defaults of a quotation form: client identity, destination and the
// rough trip shape.
type Lead struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Contact     string    `json:"contact"`
	Email       string    `json:"email"`
	Destination string    `json:"destination"`
	TravelDate  string    `json:"travelDate"`
	Days        string    `json:"days"`
	AdultCount  string    `json:"adultCount"`
	ChildCount  string    `json:"childCount"`
	Budget      string    `json:"budget"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
