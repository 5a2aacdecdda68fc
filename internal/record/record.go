// Package record defines candidate directory records and builds them from
// fetched pages.
package record

// Kind identifies which catalog table a candidate targets.
type Kind string

// Candidate entity kinds.
const (
	KindLeague Kind = "league"
	KindTeam   Kind = "team"
	KindEvent  Kind = "event"
)

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindLeague, KindTeam, KindEvent:
		return true
	}
	return false
}

// NeedsLocality reports whether the kind references a locality row rather
// than carrying a raw location string.
func (k Kind) NeedsLocality() bool {
	return k == KindLeague || k == KindTeam
}

// Candidate is a provisional, not-yet-persisted entity produced by parsing
// one page. It is created once per successfully parsed page, immutable
// thereafter, and consumed exactly once by the ingestion orchestrator.
// The JSON tags define the flat intermediate format exchanged between the
// scrape and ingest commands.
type Candidate struct {
	Kind         Kind     `json:"kind"`
	Name         string   `json:"name"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Location     string   `json:"location,omitempty"`
	Website      string   `json:"website,omitempty"`
	Divisions    []string `json:"divisions"`
	Formats      []string `json:"formats"`
	Gender       string   `json:"gender,omitempty"`
	CompLevels   []string `json:"comp_levels"`
	ContactType  string   `json:"contact_type,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
	Fee          float64  `json:"fee,omitempty"`
	SeasonStart  string   `json:"season_start,omitempty"`
	SeasonEnd    string   `json:"season_end,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	About        string   `json:"about,omitempty"`
	EventKind    string   `json:"event_kind,omitempty"`
	Source       string   `json:"source"`
	SourceURL    string   `json:"source_url"`
}

// HasRequiredFields reports whether the candidate carries the fields its
// kind requires: a name always, city and state for leagues and teams, a
// location string and start date for events.
func (c *Candidate) HasRequiredFields() bool {
	if c.Name == "" {
		return false
	}
	if c.Kind.NeedsLocality() {
		return c.City != "" && c.State != ""
	}
	if c.Kind == KindEvent {
		return c.Location != "" && c.State != "" && c.StartDate != ""
	}
	return false
}
