package record

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/extract"
)

// nameSelectors are the candidate name extraction strategies, tried in
// order of prominence; the first element with non-empty text wins.
var nameSelectors = []string{"h1", "h2", "h3", "strong"}

// clinicKeywords reclassify an event as a clinic when any appears in its name.
var clinicKeywords = []string{"clinic", "camp", "training", "skills"}

// defaultFormats is the fallback when a page mentions no game format.
var defaultFormats = []string{"7v7"}

// PageMeta carries per-page context the builder cannot derive from markup.
type PageMeta struct {
	Kind           Kind
	Source         string
	URL            string
	DefaultFormats []string
}

// Builder assembles one candidate record per page using the shared field
// extractors and per-kind required-field policy. Pages that fail the
// quality gate are dropped with a warning, never an error: a record
// lacking locality is not actionable.
type Builder struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewBuilder constructs a Builder. A nil now defaults to time.Now.
func NewBuilder(logger *zap.Logger, now func() time.Time) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{logger: logger, now: now}
}

// Build parses the page body and returns the candidate, or nil when the
// page does not yield the fields meta.Kind requires.
func (b *Builder) Build(body []byte, meta PageMeta) *Candidate {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		b.logger.Warn("unparseable page body", zap.String("url", meta.URL), zap.Error(err))
		return nil
	}

	name := b.extractName(doc)
	if name == "" {
		b.logger.Warn("no name found", zap.String("url", meta.URL))
		return nil
	}

	text := doc.Text()
	city, state := extract.Location(text)
	seasonStart, seasonEnd := extract.SeasonWindow(text, b.now())

	defaults := meta.DefaultFormats
	if len(defaults) == 0 {
		defaults = defaultFormats
	}

	c := &Candidate{
		Kind:         meta.Kind,
		Name:         name,
		Website:      meta.URL,
		Divisions:    extract.AgeDivisions(text),
		Formats:      extract.Formats(text, defaults),
		Gender:       extract.Gender(text),
		CompLevels:   extract.CompLevels(text),
		ContactType:  "non-contact",
		ContactEmail: extract.Email(text),
		ContactPhone: extract.Phone(text),
		Fee:          extract.Fee(text),
		SeasonStart:  seasonStart,
		SeasonEnd:    seasonEnd,
		About:        extract.Synopsis(doc.Find("p").First().Text()),
		Source:       meta.Source,
		SourceURL:    meta.URL,
	}

	switch {
	case meta.Kind.NeedsLocality():
		if city == "" || state == "" {
			b.logger.Warn("no location found",
				zap.String("name", name), zap.String("url", meta.URL))
			return nil
		}
		c.City = city
		c.State = state
	case meta.Kind == KindEvent:
		if city == "" || state == "" {
			b.logger.Warn("no event location found",
				zap.String("name", name), zap.String("url", meta.URL))
			return nil
		}
		c.State = state
		c.Location = city + ", " + state
		c.StartDate, c.EndDate = extract.Dates(text)
		if c.StartDate == "" {
			b.logger.Warn("no event start date found",
				zap.String("name", name), zap.String("url", meta.URL))
			return nil
		}
		c.EventKind = classifyEvent(name)
	default:
		b.logger.Warn("unknown entity kind",
			zap.String("kind", string(meta.Kind)), zap.String("url", meta.URL))
		return nil
	}

	return c
}

// extractName tries each name selector in order, then falls back to the
// portion of the page title preceding the "|" separator.
func (b *Builder) extractName(doc *goquery.Document) string {
	for _, sel := range nameSelectors {
		if name := extract.CleanText(doc.Find(sel).First().Text()); name != "" {
			return name
		}
	}
	title := doc.Find("title").First().Text()
	title, _, _ = strings.Cut(title, "|")
	return extract.CleanText(title)
}

func classifyEvent(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range clinicKeywords {
		if strings.Contains(lower, kw) {
			return "clinic"
		}
	}
	return "tournament"
}
