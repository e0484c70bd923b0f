package models

import "time"

// Quotation is a submitted quotation: the immutable record written when an
// agent finalizes a draft. Payload carries the full form snapshot as JSON
// so the PDF can be re-rendered later without reopening a session.
type Quotation struct {
	ID          int64     `json:"id"`
	TripID      string    `json:"tripId"`
	LeadID      string    `json:"leadId,omitempty"`
	ClientName  string    `json:"clientName"`
	Destination string    `json:"destination"`
	TravelDate  string    `json:"travelDate"`
	Days        string    `json:"days"`
	TotalCost   float64   `json:"totalCost"`
	Payload     string    `json:"-"`
	SubmittedAt time.Time `json:"submittedAt"`
}
