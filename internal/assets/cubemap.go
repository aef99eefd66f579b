package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// FaceNames are the cubemap face file stems in GL target order:
// +X, -X, +Y, -Y, +Z, -Z.
var FaceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

// FaceExt is the extension of per-face cubemap files.
const FaceExt = ".jpg"

// Cubemap is six faces in GL target order, all the same square size.
type Cubemap [6]image.Image

// LoadCubemap reads a skybox. A directory holds one file per face
// (right.jpg, left.jpg, ...); any other path is a horizontal-cross image.
func LoadCubemap(path string) (Cubemap, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Cubemap{}, err
	}
	if !info.IsDir() {
		img, err := Open(path)
		if err != nil {
			return Cubemap{}, err
		}
		return SliceCross(img)
	}

	var faces [6]image.Image
	for i, name := range FaceNames {
		img, err := Open(filepath.Join(path, name+FaceExt))
		if err != nil {
			return Cubemap{}, fmt.Errorf("cubemap face %s: %w", name, err)
		}
		faces[i] = img
	}
	return Uniform(faces), nil
}

// CrossRect returns the pixel box of face i in a horizontal cross of width w.
// The cross is four faces wide and three tall:
//
//	      top
//	left front right back
//	     bottom
func CrossRect(i, w int) image.Rectangle {
	s := w / 4
	cells := [6]image.Point{
		{2, 1}, // right
		{0, 1}, // left
		{1, 0}, // top
		{1, 2}, // bottom
		{1, 1}, // front
		{3, 1}, // back
	}
	c := cells[i]
	return image.Rect(c.X*s, c.Y*s, (c.X+1)*s, (c.Y+1)*s)
}

// SliceCross cuts a horizontal-cross image into its six faces.
func SliceCross(img image.Image) (Cubemap, error) {
	b := img.Bounds()
	s := b.Dx() / 4
	if s == 0 || b.Dy() < 3*s {
		return Cubemap{}, fmt.Errorf("cross image %dx%d: want 4:3 layout", b.Dx(), b.Dy())
	}
	src := ToNRGBA(img)
	var faces Cubemap
	for i := range faces {
		faces[i] = src.SubImage(CrossRect(i, b.Dx()))
	}
	return faces, nil
}

// Uniform scales faces to the size of the largest one so every face matches.
func Uniform(faces [6]image.Image) Cubemap {
	size := 0
	for _, f := range faces {
		b := f.Bounds()
		size = max(size, b.Dx(), b.Dy())
	}
	var out Cubemap
	for i, f := range faces {
		b := f.Bounds()
		if b.Dx() == size && b.Dy() == size {
			out[i] = f
			continue
		}
		out[i] = Resize(f, size, size)
	}
	return out
}
