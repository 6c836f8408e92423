package api

import "time"

// swagger:model api.LeadResponse
type LeadResponse struct {
	ID              int       `json:"id" example:"1"`
	OwnerID         int       `json:"owner_id" example:"1"`
	FirstName       string    `json:"first_name" example:"Ana"`
	LastName        string    `json:"last_name" example:"Lee"`
	Email           string    `json:"email" example:"a@x.com"`
	Company         string    `json:"company" example:"Acme"`
	Note            string    `json:"note" example:""`
	DateCreated     time.Time `json:"date_created" example:"2025-05-01T15:04:05Z"`
	DateLastUpdated time.Time `json:"date_last_updated" example:"2025-05-01T15:04:05Z"`
}
