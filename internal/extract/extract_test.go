package extract

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		wantCity string
		wantST   string
	}{
		{name: "city comma state", text: "Registration open! Riverside, CA fields", wantCity: "Riverside", wantST: "CA"},
		{name: "preceded by in", text: "in Austin, TX", wantCity: "Austin", wantST: "TX"},
		{name: "multi word city", text: "games at San Antonio, TX", wantCity: "San Antonio", wantST: "TX"},
		{name: "capitalized phrase false positive", text: "Join Greater Memphis, TN today", wantCity: "Join Greater Memphis", wantST: "TN"},
		{name: "lowercase state ignored", text: "riverside, ca", wantCity: "", wantST: ""},
		{name: "no location", text: "sign up today", wantCity: "", wantST: ""},
		{name: "empty", text: "", wantCity: "", wantST: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state := Location(tt.text)
			if city != tt.wantCity || state != tt.wantST {
				t.Fatalf("Location(%q) = (%q, %q), want (%q, %q)", tt.text, city, state, tt.wantCity, tt.wantST)
			}
		})
	}
}

func TestAgeDivisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "ages range", text: "open to ages 6 to 10", want: []string{"6U", "8U", "10U"}},
		{name: "ages with dash", text: "ages 8-12 welcome", want: []string{"8U", "10U", "12U"}},
		{name: "literal tokens", text: "divisions: 8U, 10U and 14U", want: []string{"8U", "10U", "14U"}},
		{name: "range and tokens unioned", text: "ages 6 to 8 plus a 12U travel squad", want: []string{"6U", "8U", "12U"}},
		{name: "no divisions", text: "everyone plays", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeDivisions(tt.text))
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	defaults := []string{"7v7"}

	got := Formats("we run 5v5 in winter and 7 v 7 in fall", defaults)
	assert.Equal(t, []string{"5v5", "7v7"}, got)

	got = Formats("no format mentioned", defaults)
	assert.Equal(t, []string{"7v7"}, got)

	// The fallback is a copy, not an alias of the caller's slice.
	got[0] = "5v5"
	assert.Equal(t, []string{"7v7"}, defaults)
}

func TestGenderPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{text: "an all-girls league", want: "F"},
		{text: "girls only division", want: "F"},
		{text: "co-ed girls only", want: "F"},
		{text: "boys only this season", want: "M"},
		{text: "a co-ed program", want: "coed"},
		{text: "mixed teams welcome", want: "coed"},
		{text: "", want: "coed"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Gender(tt.text))
		})
	}
}

func TestCompLevels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"competitive"}, CompLevels("an elite travel team"))
	assert.Equal(t, []string{"rec"}, CompLevels("recreational play for beginners"))
	assert.Equal(t, []string{"competitive", "rec"}, CompLevels("competitive and recreational divisions"))
	assert.Equal(t, []string{"rec"}, CompLevels("flag football for everyone"))
}

func TestSeasonWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	start, end := SeasonWindow("Fall season registration", now)
	assert.Equal(t, "2025-09-01", start)
	assert.Equal(t, "2025-11-30", end)

	start, end = SeasonWindow("no season here", now)
	assert.Empty(t, start)
	assert.Empty(t, end)
}

func TestDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantStart string
		wantEnd   string
	}{
		{name: "slash dates", text: "runs 6/14/2025 through 6/15/2025", wantStart: "2025-06-14", wantEnd: "2025-06-15"},
		{name: "iso date", text: "kickoff 2025-09-01", wantStart: "2025-09-01", wantEnd: ""},
		{name: "month name", text: "held on March 8, 2025 at the park", wantStart: "2025-03-08", wantEnd: ""},
		{name: "single date only", text: "one day event 7/4/2025", wantStart: "2025-07-04", wantEnd: ""},
		{name: "no dates", text: "coming soon", wantStart: "", wantEnd: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Dates(tt.text)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestEmailAndPhone(t *testing.T) {
	t.Parallel()

	text := "Questions? Email coach@example.com or call (555) 867-5309."
	assert.Equal(t, "coach@example.com", Email(text))
	assert.Equal(t, "(555) 867-5309", Phone(text))

	assert.Empty(t, Email("no contact listed"))
	assert.Empty(t, Phone("no contact listed"))
}

func TestFee(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 150.0, Fee("registration is $150 per player"))
	assert.Equal(t, 1250.50, Fee("team fee $1,250.50 due in May"))
	assert.Equal(t, 0.0, Fee("free to play"))
}

func TestSynopsis(t *testing.T) {
	t.Parallel()

	text := "\n\n  Our league has served the city   since 1998. \n\nSecond paragraph."
	assert.Equal(t, "Our league has served the city since 1998.", Synopsis(text))

	long := ""
	for range 60 {
		long += "flag football "
	}
	got := Synopsis(long)
	require.Len(t, got, MaxSynopsisLen)

	assert.Empty(t, Synopsis("   \n\n  "))
}

func TestSynopsisMultibyteTruncation(t *testing.T) {
	t.Parallel()

	// A two-byte rune straddling the cap must not be split mid-sequence.
	text := strings.Repeat("a", MaxSynopsisLen-1) + "é and more"
	got := Synopsis(text)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, []rune(got), MaxSynopsisLen)
	assert.True(t, strings.HasSuffix(got, "é"))

	short := "Liga de fútbol bandera José María."
	assert.Equal(t, short, Synopsis(short))
}
