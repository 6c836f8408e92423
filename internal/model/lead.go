// File: internal/model/lead.go
package model

import "time"

type Lead struct {
	ID              int       `db:"id" json:"id"`
	OwnerID         int       `db:"owner_id" json:"owner_id"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	Email           string    `db:"email" json:"email"`
	Company         string    `db:"company" json:"company"`
	Note            string    `db:"note" json:"note"`
	DateCreated     time.Time `db:"date_created" json:"date_created"`
	DateLastUpdated time.Time `db:"date_last_updated" json:"date_last_updated"`
}
