package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloads(t *testing.T) {
	t.Setenv(SeedEnv, "")
	path := filepath.Join(t.TempDir(), "raft.toml")
	require.NoError(t, os.WriteFile(path, []byte("cull_face = true\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, Overrides{}, nil)
	require.NoError(t, err)

	// An invalid edit is skipped; the next valid one is delivered.
	require.NoError(t, os.WriteFile(path, []byte("tick_rate = -1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("cull_face = false\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-ch:
			if !cfg.CullFace {
				cancel()
				for range ch {
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raft.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, path, Overrides{}, nil)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestWatchMissingDir(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "raft.toml"), Overrides{}, nil)
	assert.Error(t, err)
}

func TestWatchKeepsOverrides(t *testing.T) {
	t.Setenv(SeedEnv, "")
	path := filepath.Join(t.TempDir(), "raft.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"info\"\n"), 0o644))

	level := "error"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, path, Overrides{LogLevel: &level}, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log_level = \"debug\"\ncull_face = false\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-ch:
			assert.Equal(t, "error", cfg.LogLevel, "flag level survives the edit")
			if !cfg.CullFace {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
