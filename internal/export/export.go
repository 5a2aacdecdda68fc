// Package export persists scraped candidate records between the scrape and
// ingest stages, and produces CSV summaries for manual review.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flagfootballdirectory/crawler/internal/record"
)

// SaveJSON writes candidates to path as indented JSON, creating parent
// directories as needed.
func SaveJSON(path string, candidates []record.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create export dir for %s: %w", path, err)
	}
	payload, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write candidates %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads candidates previously written by SaveJSON.
func LoadJSON(path string) ([]record.Candidate, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates %s: %w", path, err)
	}
	var candidates []record.Candidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		return nil, fmt.Errorf("unmarshal candidates %s: %w", path, err)
	}
	return candidates, nil
}

var csvHeader = []string{
	"kind", "name", "city", "state", "location",
	"divisions", "formats", "gender", "comp_levels",
	"contact_email", "contact_phone", "fee",
	"season_start", "season_end", "start_date", "end_date",
	"website", "source", "source_url",
}

// SaveCSV writes a flat review sheet of the candidates. List fields are
// joined with "|" so the file stays one row per record.
func SaveCSV(path string, candidates []record.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create export dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range candidates {
		row := []string{
			string(c.Kind), c.Name, c.City, c.State, c.Location,
			strings.Join(c.Divisions, "|"),
			strings.Join(c.Formats, "|"),
			c.Gender,
			strings.Join(c.CompLevels, "|"),
			c.ContactEmail, c.ContactPhone, formatFee(c.Fee),
			c.SeasonStart, c.SeasonEnd, c.StartDate, c.EndDate,
			c.Website, c.Source, c.SourceURL,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", c.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	return nil
}

func formatFee(fee float64) string {
	if fee == 0 {
		return ""
	}
	return strconv.FormatFloat(fee, 'f', -1, 64)
}
