package frame

import (
	"context"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raft/internal/assets"
	"raft/internal/config"
	"raft/internal/scene"
)

func snapshotConfig(t *testing.T) config.Config {
	cfg := config.Default()
	dir := t.TempDir()
	// Missing files fall back to placeholders.
	cfg.Assets = config.Assets{
		Box:    filepath.Join(dir, "box.png"),
		Wood:   filepath.Join(dir, "wood.jpg"),
		Sail:   filepath.Join(dir, "sail.jpg"),
		Skybox: filepath.Join(dir, "skybox"),
	}
	cfg.Seed = 42
	return cfg
}

func TestRenderSnapshotDeterministic(t *testing.T) {
	opts := SnapshotOptions{Width: 48, Height: 30, Time: 0.5, Mode: scene.ModePlaying, Config: snapshotConfig(t)}
	a, err := RenderSnapshot(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 30), a.Bounds())

	b, err := RenderSnapshot(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderSnapshotModesDiffer(t *testing.T) {
	cfg := snapshotConfig(t)
	menu, err := RenderSnapshot(context.Background(), SnapshotOptions{Width: 32, Height: 24, Time: 1, Mode: scene.ModeMenu, Config: cfg}, nil)
	require.NoError(t, err)
	play, err := RenderSnapshot(context.Background(), SnapshotOptions{Width: 32, Height: 24, Time: 1, Mode: scene.ModePlaying, Config: cfg}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, menu.Pix, play.Pix)
}

func TestRenderSnapshotInvalidSize(t *testing.T) {
	_, err := RenderSnapshot(context.Background(), SnapshotOptions{Width: 0, Height: 10, Config: snapshotConfig(t)}, nil)
	assert.Error(t, err)
}

func TestRenderSnapshotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderSnapshot(ctx, SnapshotOptions{Width: 8, Height: 8, Time: 10, Config: snapshotConfig(t)}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	opts := SnapshotOptions{Width: 16, Height: 12, Time: 0.1, Config: snapshotConfig(t)}
	require.NoError(t, WriteSnapshot(context.Background(), path, opts, nil))

	img, err := assets.Open(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), img.Bounds())

	assert.ErrorIs(t, WriteSnapshot(context.Background(), filepath.Join(t.TempDir(), "frame.xyz"), opts, nil), assets.ErrUnsupportedFormat)
}
