package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsJS(t *testing.T) {
	tests := []struct {
		name      string
		minBytes  int
		selectors []string
		keywords  []string
		body      string
		want      bool
	}{
		{
			name:     "tiny shell body",
			minBytes: 200,
			body:     `<html><body><div id="root"></div></body></html>`,
			want:     true,
		},
		{
			name:     "noscript keyword",
			keywords: []string{"enable javascript"},
			body:     `<html><body><noscript>Please ENABLE JavaScript to view this directory.</noscript></body></html>`,
			want:     true,
		},
		{
			name:      "required selector missing",
			selectors: []string{".league-card"},
			body:      `<html><body><div id="app"></div></body></html>` + strings.Repeat(" ", 512),
			want:      true,
		},
		{
			name:      "fully server rendered",
			minBytes:  64,
			selectors: []string{"h1"},
			keywords:  []string{"enable javascript"},
			body:      `<html><body><h1>Riverside Flyers</h1><p>Flag football league in Riverside, CA.</p></body></html>`,
			want:      false,
		},
		{
			name: "no thresholds configured",
			body: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(tt.minBytes, tt.selectors, tt.keywords)
			assert.Equal(t, tt.want, d.NeedsJS([]byte(tt.body)))
		})
	}
}

func TestNeedsJSNilDetector(t *testing.T) {
	var d *Detector
	assert.False(t, d.NeedsJS([]byte("<html></html>")))
}

func TestExtractLinks(t *testing.T) {
	body := []byte(`<html><body>
		<a href="/leagues/riverside-flyers">Riverside Flyers</a>
		<a href="https://other.example.com/teams">Teams</a>
		<a href="#top">Back to top</a>
		<a href="   ">blank</a>
	</body></html>`)

	links := ExtractLinks(body, "https://directory.example.com/leagues")
	assert.Equal(t, []string{
		"https://directory.example.com/leagues/riverside-flyers",
		"https://other.example.com/teams",
	}, links)
}

func TestExtractLinksBadBase(t *testing.T) {
	assert.Nil(t, ExtractLinks([]byte(`<a href="/x">x</a>`), "http://bad url\x7f"))
}
