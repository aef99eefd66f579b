package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"raft/internal/assets"
)

// TextureStore owns texture storage. Its methods are only called from the
// render goroutine.
type TextureStore interface {
	UploadTexture(img image.Image) (Texture, error)
	UploadCubemap(faces [6]image.Image) (Texture, error)
	ReplaceTexture(h Texture, img image.Image) error
	ReplaceCubemap(h Texture, faces [6]image.Image) error
}

type loadResult struct {
	tex   Texture
	path  string
	img   image.Image
	faces assets.Cubemap
	cube  bool
	err   error
}

// Loader hands out texture handles bound to a placeholder at once and decodes
// the real images in the background. Poll swaps finished images in on the
// render goroutine. Failed loads keep the placeholder.
type Loader struct {
	store   TextureStore
	log     *slog.Logger
	results chan loadResult
	pending int
}

// NewLoader returns a loader uploading into store.
func NewLoader(store TextureStore, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{store: store, log: log, results: make(chan loadResult, 8)}
}

// Texture returns a handle for the image at path.
func (l *Loader) Texture(path string) (Texture, error) {
	h, err := l.store.UploadTexture(assets.Placeholder())
	if err != nil {
		return 0, fmt.Errorf("placeholder for %s: %w", path, err)
	}
	l.pending++
	go func() {
		img, err := assets.Open(path)
		l.results <- loadResult{tex: h, path: path, img: img, err: err}
	}()
	return h, nil
}

// Cubemap returns a handle for the skybox at path (a face directory or a cross image).
func (l *Loader) Cubemap(path string) (Texture, error) {
	var faces [6]image.Image
	for i := range faces {
		faces[i] = assets.Placeholder()
	}
	h, err := l.store.UploadCubemap(faces)
	if err != nil {
		return 0, fmt.Errorf("placeholder for %s: %w", path, err)
	}
	l.pending++
	go func() {
		faces, err := assets.LoadCubemap(path)
		l.results <- loadResult{tex: h, path: path, faces: faces, cube: true, err: err}
	}()
	return h, nil
}

// Pending is the number of loads not yet applied.
func (l *Loader) Pending() int { return l.pending }

// Poll applies every finished load without blocking.
func (l *Loader) Poll() {
	for l.pending > 0 {
		select {
		case res := <-l.results:
			l.apply(res)
		default:
			return
		}
	}
}

// Wait blocks until every load has been applied.
func (l *Loader) Wait(ctx context.Context) error {
	for l.pending > 0 {
		select {
		case res := <-l.results:
			l.apply(res)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (l *Loader) apply(res loadResult) {
	l.pending--
	err := res.err
	if err == nil {
		if res.cube {
			err = l.store.ReplaceCubemap(res.tex, res.faces)
		} else {
			err = l.store.ReplaceTexture(res.tex, res.img)
		}
	}
	if err != nil {
		l.log.Warn("texture load failed, keeping placeholder", "path", res.path, "err", err)
		return
	}
	l.log.Debug("texture loaded", "path", res.path)
}

// LoadTextures starts loading the scene's textures.
func LoadTextures(l *Loader, box, wood, sail, skybox string) (Textures, error) {
	var t Textures
	var err error
	for _, s := range []struct {
		dst  *Texture
		path string
	}{{&t.Box, box}, {&t.Wood, wood}, {&t.Sail, sail}} {
		if *s.dst, err = l.Texture(s.path); err != nil {
			return Textures{}, err
		}
	}
	if t.Skybox, err = l.Cubemap(skybox); err != nil {
		return Textures{}, err
	}
	return t, nil
}
