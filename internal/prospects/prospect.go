// Package prospects implements the prospect domain for Cadence.
// It provides types, data access, and business logic for the people being
// pursued: created on first scrape sighting, enriched on subsequent sightings,
// never destroyed by ingest.
package prospects

import (
	"time"

	"github.com/google/uuid"
)

// Prospect represents a person being pursued. ProfileURL is the external
// LinkedIn profile reference and the natural key for upserts.
type Prospect struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	JobTitle   string    `json:"job_title"`
	Company    string    `json:"company"`
	Sector     string    `json:"sector"`
	Location   string    `json:"location"`
	ProfileURL string    `json:"profile_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpsertCommand carries the data observed for a prospect during a scrape pass.
// Empty fields never overwrite previously enriched values.
type UpsertCommand struct {
	Name       string `json:"name"`
	JobTitle   string `json:"job_title"`
	Company    string `json:"company"`
	Sector     string `json:"sector"`
	Location   string `json:"location"`
	ProfileURL string `json:"profile_url"`
}
