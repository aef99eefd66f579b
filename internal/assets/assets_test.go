package assets

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.Equal(t, image.Rect(0, 0, 1, 1), p.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, p.NRGBAAt(0, 0))
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", PNG},
		{"a/b/box.JPG", JPEG},
		{"sky.jpeg", JPEG},
		{"x.tif", TIFF},
		{"x.tiff", TIFF},
		{"x.bmp", BMP},
		{"x.gif", GIF},
		{"x.webp", WebP},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatForPath("scene.exr")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteRead(t *testing.T) {
	src := solid(4, 2, color.NRGBA{10, 200, 30, 255})
	for _, f := range []Format{PNG, BMP, TIFF} {
		var buf bytes.Buffer
		require.NoError(t, Write(src, &buf, f))
		img, err := Read(&buf)
		require.NoError(t, err)
		assert.Equal(t, src.Bounds(), img.Bounds())
		assert.Equal(t, color.NRGBA{10, 200, 30, 255}, ToNRGBA(img).NRGBAAt(3, 1))
	}

	assert.ErrorIs(t, Write(src, &bytes.Buffer{}, WebP), ErrUnsupportedFormat)
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, Save(solid(3, 3, color.NRGBA{1, 2, 3, 255}), path))

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{1, 2, 3, 255}, ToNRGBA(img).NRGBAAt(1, 1))

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.ErrorIs(t, Save(Placeholder(), filepath.Join(t.TempDir(), "f.raw")), ErrUnsupportedFormat)
}

func TestToNRGBA(t *testing.T) {
	n := solid(2, 2, color.NRGBA{5, 5, 5, 255})
	assert.Same(t, n, ToNRGBA(n))

	sub := n.SubImage(image.Rect(1, 1, 2, 2))
	got := ToNRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 1, 1), got.Bounds())
	assert.Equal(t, color.NRGBA{5, 5, 5, 255}, got.NRGBAAt(0, 0))

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.RGBA{255, 0, 0, 255})
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, ToNRGBA(rgba).NRGBAAt(0, 0))
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 64, 1024} {
		assert.True(t, IsPowerOfTwo(n), n)
	}
	for _, n := range []int{0, -4, 3, 100, 1023} {
		assert.False(t, IsPowerOfTwo(n), n)
	}
}

func TestResize(t *testing.T) {
	got := Resize(solid(2, 2, color.NRGBA{0, 255, 0, 255}), 8, 8)
	assert.Equal(t, image.Rect(0, 0, 8, 8), got.Bounds())
	assertNearColor(t, color.NRGBA{0, 255, 0, 255}, got.NRGBAAt(4, 4))
}

// assertNearColor allows one step of rounding per channel from filtering.
func assertNearColor(t *testing.T, want, got color.NRGBA, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, 1, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, 1, msgAndArgs...)
	assert.InDelta(t, want.A, got.A, 1, msgAndArgs...)
}
