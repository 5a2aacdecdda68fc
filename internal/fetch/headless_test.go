package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	defer r.Close()

	assert.Equal(t, 25*time.Second, r.cfg.NavigationTimeout)
	assert.Equal(t, 500*time.Millisecond, r.cfg.ScrollPause)
	assert.NotNil(t, r.allocator)
}

func TestRendererCloseNil(t *testing.T) {
	var r *Renderer
	r.Close()
}

func TestRenderCanceledContext(t *testing.T) {
	r := NewRenderer(RendererConfig{NavigationTimeout: time.Second})
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "https://dir.example.com/leagues")
	assert.ErrorIs(t, err, context.Canceled)
}
