// Package slugify derives URL-safe identifiers from display names.
package slugify

import (
	"strings"

	"github.com/kennygrant/sanitize"
)

// Make joins the given parts and converts them to a lowercase URL-safe slug.
// "Elon Park i9 Sports League" becomes "elon-park-i9-sports-league".
func Make(parts ...string) string {
	joined := strings.TrimSpace(strings.Join(parts, " "))
	if joined == "" {
		return ""
	}
	s := sanitize.Name(joined)
	s = strings.ReplaceAll(s, ".", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
