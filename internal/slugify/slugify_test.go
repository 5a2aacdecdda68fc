package slugify

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "simple name", parts: []string{"Riverside Flyers"}, want: "riverside-flyers"},
		{name: "city and state", parts: []string{"Austin", "TX"}, want: "austin-tx"},
		{name: "punctuation stripped", parts: []string{"St. Louis Flag League"}, want: "st-louis-flag-league"},
		{name: "extra whitespace", parts: []string{"  Elon  Park  League "}, want: "elon-park-league"},
		{name: "empty input", parts: []string{""}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.parts...); got != tt.want {
				t.Fatalf("Make(%q) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}
