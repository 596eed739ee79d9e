package prospects

import (
	"net/url"

	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prospects", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("job_title", "JobTitle").
	Project("company", "Company").
	Project("sector", "Sector").
	Project("location", "Location").
	Project("profile_url", "ProfileURL").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for prospect queries.
// Nil fields are ignored. Sector uses exact matching; the rest use
// case-insensitive contains matching.
type Filters struct {
	Name     *string `json:"name,omitempty"`
	JobTitle *string `json:"job_title,omitempty"`
	Company  *string `json:"company,omitempty"`
	Sector   *string `json:"sector,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereContains("JobTitle", f.JobTitle).
		WhereContains("Company", f.Company).
		WhereEquals("Sector", f.Sector)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if jt := values.Get("job_title"); jt != "" {
		f.JobTitle = &jt
	}

	if c := values.Get("company"); c != "" {
		f.Company = &c
	}

	if s := values.Get("sector"); s != "" {
		f.Sector = &s
	}

	return f
}

func scanProspect(s repository.Scanner) (Prospect, error) {
	var p Prospect
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.JobTitle,
		&p.Company,
		&p.Sector,
		&p.Location,
		&p.ProfileURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
