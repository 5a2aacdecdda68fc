package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flagfootballdirectory/crawler/internal/record"
)

func sampleCandidates() []record.Candidate {
	return []record.Candidate{
		{
			Kind:         record.KindLeague,
			Name:         "Riverside Flyers",
			City:         "Riverside",
			State:        "CA",
			Divisions:    []string{"8U", "10U", "12U"},
			Formats:      []string{"7v7"},
			Gender:       "coed",
			CompLevels:   []string{"rec"},
			ContactEmail: "info@riversideflyers.com",
			SeasonStart:  "2026-09-01",
			SeasonEnd:    "2026-11-30",
			Source:       "riverside",
			SourceURL:    "https://dir.example.com/leagues/riverside-flyers",
		},
		{
			Kind:      record.KindEvent,
			Name:      "Gulf Coast Skills Camp",
			Location:  "Tampa",
			State:     "FL",
			EventKind: "clinic",
			StartDate: "2026-06-12",
			Fee:       75,
			Source:    "gulfcoast",
		},
	}
}

func TestSaveLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "candidates.json")
	want := sampleCandidates()

	require.NoError(t, SaveJSON(path, want))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadJSONMissingFile(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := LoadJSON(path)
	assert.Error(t, err)
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.csv")
	require.NoError(t, SaveCSV(path, sampleCandidates()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	league := rows[1]
	assert.Equal(t, "league", league[0])
	assert.Equal(t, "Riverside Flyers", league[1])
	assert.Equal(t, "8U|10U|12U", league[5])
	assert.Equal(t, "", league[11])

	event := rows[2]
	assert.Equal(t, "event", event[0])
	assert.Equal(t, "Tampa", event[4])
	assert.Equal(t, "75", event[11])
}
