// Package extract implements heuristic field recognition over raw page text.
//
// Every function here is pure and total: any input, including empty or
// adversarial text, yields a defined default rather than an error. The
// heuristics are shared by all site scrapers so a new source only has to
// supply seed URLs, not its own parsing rules.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MaxSynopsisLen caps the about/synopsis field.
const MaxSynopsisLen = 500

var (
	locationPattern = regexp.MustCompile(`(?:\bin\s+)?((?:[A-Z][A-Za-z]*\s+){0,2}[A-Z][A-Za-z]*),\s*([A-Z]{2})\b`)
	ageRangePattern = regexp.MustCompile(`(?i)ages?\s+(\d+)\s*(?:to|-)\s*(\d+)`)
	divisionPattern = regexp.MustCompile(`\b(\d+)U\b`)
	seasonPattern   = regexp.MustCompile(`(?i)\b(spring|summer|fall|winter)\b`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	feePattern      = regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)
)

// seasonMonths maps a season keyword to its calendar month-day window.
var seasonMonths = map[string][2]string{
	"spring": {"03-01", "05-31"},
	"summer": {"06-01", "08-31"},
	"fall":   {"09-01", "11-30"},
	"winter": {"12-01", "02-28"},
}

// CleanText collapses all runs of whitespace into single spaces and trims.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Location returns the first "City, ST" phrase in text, optionally preceded
// by "in". The city is at most three capitalized words. There is no
// gazetteer check on the state code or city spelling, so ambiguous
// capitalized phrases can produce false positives.
func Location(text string) (city, state string) {
	m := locationPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return CleanText(m[1]), m[2]
}

// AgeDivisions finds age-bracket labels in text. "ages 6 to 10" expands to
// 6U, 8U, 10U by stepping two years at a time; literal tokens like "12U"
// are collected wherever they appear. The union is deduplicated and sorted
// by age for deterministic output.
func AgeDivisions(text string) []string {
	seen := make(map[int]struct{})

	if m := ageRangePattern.FindStringSubmatch(text); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		for age := start; age <= end; age += 2 {
			seen[age] = struct{}{}
		}
	}

	for _, m := range divisionPattern.FindAllStringSubmatch(text, -1) {
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[age] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}
	ages := make([]int, 0, len(seen))
	for age := range seen {
		ages = append(ages, age)
	}
	sort.Ints(ages)
	divisions := make([]string, 0, len(ages))
	for _, age := range ages {
		divisions = append(divisions, fmt.Sprintf("%dU", age))
	}
	return divisions
}

// Formats detects game formats by case-insensitive substring tests. When
// neither format appears, the caller-supplied defaults are returned so the
// result is never empty for entity kinds that carry a default.
func Formats(text string, defaults []string) []string {
	lower := strings.ToLower(text)
	var formats []string
	if strings.Contains(lower, "5v5") || strings.Contains(lower, "5 v 5") {
		formats = append(formats, "5v5")
	}
	if strings.Contains(lower, "7v7") || strings.Contains(lower, "7 v 7") {
		formats = append(formats, "7v7")
	}
	if len(formats) == 0 {
		return append([]string(nil), defaults...)
	}
	return formats
}

// Gender classifies the program as "F", "M", or "coed" by keyword.
// Girls-only keywords are checked before boys-only and coed keywords, so
// "co-ed girls only" resolves to "F".
func Gender(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "all-girls"),
		strings.Contains(lower, "girls only"),
		strings.Contains(lower, "girls-only"):
		return "F"
	case strings.Contains(lower, "boys only"),
		strings.Contains(lower, "boys-only"):
		return "M"
	case strings.Contains(lower, "co-ed"),
		strings.Contains(lower, "coed"),
		strings.Contains(lower, "mixed"):
		return "coed"
	default:
		return "coed"
	}
}

// CompLevels detects competitive levels by keyword presence. The result is
// never empty: text that mentions neither family of keywords defaults to
// recreational.
func CompLevels(text string) []string {
	lower := strings.ToLower(text)
	var levels []string
	if strings.Contains(lower, "competitive") ||
		strings.Contains(lower, "elite") ||
		strings.Contains(lower, "travel") {
		levels = append(levels, "competitive")
	}
	if strings.Contains(lower, "recreational") ||
		strings.Contains(lower, "beginner") {
		levels = append(levels, "rec")
	}
	if len(levels) == 0 {
		return []string{"rec"}
	}
	return levels
}

// SeasonWindow maps the first season keyword in text to a fixed month range
// of now's calendar year, formatted YYYY-MM-DD. Explicit dates in the text
// are not parsed here.
func SeasonWindow(text string, now time.Time) (start, end string) {
	m := seasonPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	window, ok := seasonMonths[strings.ToLower(m[1])]
	if !ok {
		return "", ""
	}
	year := now.Year()
	return fmt.Sprintf("%d-%s", year, window[0]), fmt.Sprintf("%d-%s", year, window[1])
}

// datePatterns are tried in order; all matches are collected so the first
// two dates found become the start and end of an event.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`(?i)(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`),
}

var dateLayouts = []string{"1/2/2006", "2006-01-02", "January 2, 2006", "January 2 2006"}

// Dates finds explicit dates in text and normalizes them to YYYY-MM-DD.
// The first date found becomes start, the second (if any) end; unparseable
// or absent dates yield "".
func Dates(text string) (start, end string) {
	var found []string
	for _, pattern := range datePatterns {
		found = append(found, pattern.FindAllString(text, -1)...)
	}
	if len(found) == 0 {
		return "", ""
	}
	start = normalizeDate(found[0])
	if len(found) > 1 {
		end = normalizeDate(found[1])
	}
	return start, end
}

func normalizeDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// Email returns the first email address found in text, or "".
func Email(text string) string {
	return emailPattern.FindString(text)
}

// Phone returns the first US-style phone number found in text, or "".
func Phone(text string) string {
	return phonePattern.FindString(text)
}

// Fee returns the first dollar amount found in text, or 0.
func Fee(text string) float64 {
	m := feePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return amount
}

// Synopsis returns the first paragraph-like block of text, cleaned and
// truncated to MaxSynopsisLen characters. The cap counts runes, not bytes,
// so a multibyte character at the cut is never split into invalid UTF-8.
func Synopsis(text string) string {
	for _, block := range strings.Split(text, "\n\n") {
		cleaned := CleanText(block)
		if cleaned == "" {
			continue
		}
		if runes := []rune(cleaned); len(runes) > MaxSynopsisLen {
			return string(runes[:MaxSynopsisLen])
		}
		return cleaned
	}
	return ""
}
