package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raft/internal/assets"
)

// memStore keeps uploaded images by handle.
type memStore struct {
	next     Texture
	textures map[Texture]image.Image
	cubes    map[Texture][6]image.Image
	failNew  bool
}

func newMemStore() *memStore {
	return &memStore{textures: map[Texture]image.Image{}, cubes: map[Texture][6]image.Image{}}
}

func (s *memStore) UploadTexture(img image.Image) (Texture, error) {
	if s.failNew {
		return 0, errors.New("out of memory")
	}
	s.next++
	s.textures[s.next] = img
	return s.next, nil
}

func (s *memStore) UploadCubemap(faces [6]image.Image) (Texture, error) {
	s.next++
	s.cubes[s.next] = faces
	return s.next, nil
}

func (s *memStore) ReplaceTexture(h Texture, img image.Image) error {
	s.textures[h] = img
	return nil
}

func (s *memStore) ReplaceCubemap(h Texture, faces [6]image.Image) error {
	s.cubes[h] = faces
	return nil
}

func writeImage(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	require.NoError(t, assets.Save(img, path))
}

func waitLoads(t *testing.T, l *Loader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))
}

func TestLoaderPlaceholderThenImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.png")
	writeImage(t, path, 4, 4, color.NRGBA{200, 100, 0, 255})

	store := newMemStore()
	l := NewLoader(store, nil)
	h, err := l.Texture(path)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, image.Rect(0, 0, 1, 1), store.textures[h].Bounds(), "placeholder until polled")

	waitLoads(t, l)
	assert.Equal(t, 0, l.Pending())
	assert.Equal(t, image.Rect(0, 0, 4, 4), store.textures[h].Bounds())
}

func TestLoaderKeepsPlaceholderOnFailure(t *testing.T) {
	store := newMemStore()
	l := NewLoader(store, nil)
	h, err := l.Texture(filepath.Join(t.TempDir(), "missing.jpg"))
	require.NoError(t, err)

	waitLoads(t, l)
	got := assets.ToNRGBA(store.textures[h])
	assert.Equal(t, assets.PlaceholderColor, got.NRGBAAt(0, 0))
}

func TestLoaderPlaceholderUploadFails(t *testing.T) {
	store := newMemStore()
	store.failNew = true
	_, err := NewLoader(store, nil).Texture("any.png")
	assert.Error(t, err)
}

func TestLoaderCubemap(t *testing.T) {
	dir := t.TempDir()
	for _, name := range assets.FaceNames {
		writeImage(t, filepath.Join(dir, name+assets.FaceExt), 8, 8, color.NRGBA{0, 0, 0, 255})
	}

	store := newMemStore()
	l := NewLoader(store, nil)
	h, err := l.Cubemap(dir)
	require.NoError(t, err)
	for _, f := range store.cubes[h] {
		assert.Equal(t, image.Rect(0, 0, 1, 1), f.Bounds())
	}

	waitLoads(t, l)
	for _, f := range store.cubes[h] {
		assert.Equal(t, image.Rect(0, 0, 8, 8), f.Bounds())
	}
}

func TestLoaderPollDoesNotBlock(t *testing.T) {
	l := NewLoader(newMemStore(), nil)
	l.Poll()

	l.pending = 1
	done := make(chan struct{})
	go func() {
		l.Poll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked with nothing finished")
	}
}

func TestLoaderWaitCancelled(t *testing.T) {
	l := NewLoader(newMemStore(), nil)
	l.pending = 1
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.Canceled)
}

func TestLoadTextures(t *testing.T) {
	dir := t.TempDir()
	store := newMemStore()
	l := NewLoader(store, nil)
	tex, err := LoadTextures(l, filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"), filepath.Join(dir, "c.png"), dir)
	require.NoError(t, err)

	assert.Len(t, store.textures, 3)
	assert.Contains(t, store.cubes, tex.Skybox)
	assert.ElementsMatch(t, []Texture{1, 2, 3}, []Texture{tex.Box, tex.Wood, tex.Sail})
	waitLoads(t, l)
}
