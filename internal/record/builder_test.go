package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedNow() time.Time {
	return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
}

func TestBuildLeagueFromPage(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><head><title>Riverside Flyers | Flag Football</title></head>
<body>
<h1>Riverside Flyers</h1>
<p>Youth flag football in the heart of Riverside, CA. Open to ages 8 to 12,
playing 7v7 co-ed recreational ball every fall.</p>
<div>Contact: contact@example.com</div>
</body></html>`)

	b := NewBuilder(zap.NewNop(), fixedNow)
	c := b.Build(page, PageMeta{Kind: KindLeague, Source: "flagfootballfinder.com", URL: "https://example.com/leagues/riverside-flyers"})
	require.NotNil(t, c)

	assert.Equal(t, "Riverside Flyers", c.Name)
	assert.Equal(t, "Riverside", c.City)
	assert.Equal(t, "CA", c.State)
	assert.Equal(t, []string{"8U", "10U", "12U"}, c.Divisions)
	assert.Equal(t, []string{"7v7"}, c.Formats)
	assert.Equal(t, "coed", c.Gender)
	assert.Equal(t, []string{"rec"}, c.CompLevels)
	assert.Equal(t, "contact@example.com", c.ContactEmail)
	assert.Equal(t, "non-contact", c.ContactType)
	assert.Equal(t, "2025-09-01", c.SeasonStart)
	assert.Equal(t, "2025-11-30", c.SeasonEnd)
	assert.True(t, c.HasRequiredFields())
}

func TestBuildNameFallsBackToTitle(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><head><title>Elon Park League | Directory</title></head>
<body><p>Flag football in Elon, NC for all.</p></body></html>`)

	b := NewBuilder(zap.NewNop(), fixedNow)
	c := b.Build(page, PageMeta{Kind: KindLeague, Source: "test", URL: "https://example.com/l/1"})
	require.NotNil(t, c)
	assert.Equal(t, "Elon Park League", c.Name)
}

func TestBuildLeagueWithoutLocationFails(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body><h1>Mystery League</h1><p>sign up now</p></body></html>`)

	b := NewBuilder(zap.NewNop(), fixedNow)
	assert.Nil(t, b.Build(page, PageMeta{Kind: KindLeague, Source: "test", URL: "https://example.com/l/2"}))
}

func TestBuildEvent(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body>
<h2>Gulf Coast Skills Camp</h2>
<p>Two days of drills in Tampa, FL on 6/14/2025 and 6/15/2025. $75 entry, 10U and 12U.</p>
</body></html>`)

	b := NewBuilder(zap.NewNop(), fixedNow)
	c := b.Build(page, PageMeta{Kind: KindEvent, Source: "test", URL: "https://example.com/e/1"})
	require.NotNil(t, c)

	assert.Equal(t, "Gulf Coast Skills Camp", c.Name)
	assert.Equal(t, "clinic", c.EventKind)
	assert.Equal(t, "FL", c.State)
	assert.Equal(t, "Tampa, FL", c.Location)
	assert.Equal(t, "2025-06-14", c.StartDate)
	assert.Equal(t, "2025-06-15", c.EndDate)
	assert.Equal(t, 75.0, c.Fee)
	assert.Equal(t, []string{"10U", "12U"}, c.Divisions)
}

func TestBuildEventWithoutDateFails(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body><h2>Spring Jamboree</h2><p>in Dallas, TX, dates TBA</p></body></html>`)

	b := NewBuilder(zap.NewNop(), fixedNow)
	assert.Nil(t, b.Build(page, PageMeta{Kind: KindEvent, Source: "test", URL: "https://example.com/e/2"}))
}

func TestHasRequiredFields(t *testing.T) {
	t.Parallel()

	league := Candidate{Kind: KindLeague, Name: "x", City: "Austin", State: "TX"}
	assert.True(t, league.HasRequiredFields())

	league.State = ""
	assert.False(t, league.HasRequiredFields())

	event := Candidate{Kind: KindEvent, Name: "x", State: "TX", Location: "Austin, TX", StartDate: "2025-06-01"}
	assert.True(t, event.HasRequiredFields())

	event.StartDate = ""
	assert.False(t, event.HasRequiredFields())
}
