package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `
https://dir.example.com/leagues/riverside-flyers

# reviewed, skip for now
https://dir.example.com/leagues/mesa-chargers
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	urls, err := readURLList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://dir.example.com/leagues/riverside-flyers",
		"https://dir.example.com/leagues/mesa-chargers",
	}, urls)
}

func TestReadURLListMissing(t *testing.T) {
	_, err := readURLList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
