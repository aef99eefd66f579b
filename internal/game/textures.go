package game

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"raft/internal/assets"
	"raft/internal/render"
)

// UploadTexture creates a 2D texture from img.
func (r *Renderer) UploadTexture(img image.Image) (render.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if err := r.setTexture2D(id, img); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, err
	}
	return render.Texture(id), nil
}

// ReplaceTexture re-specifies an existing 2D texture.
func (r *Renderer) ReplaceTexture(h render.Texture, img image.Image) error {
	if h == 0 || r.cubes[h] {
		return fmt.Errorf("texture %d is not a 2D texture", h)
	}
	return r.setTexture2D(uint32(h), img)
}

// setTexture2D uploads img. Power-of-two images get mipmaps and repeat;
// others clamp to the edge with linear filtering.
func (r *Renderer) setTexture2D(id uint32, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("texture %d: empty image", id)
	}
	pix := assets.ToNRGBA(img)

	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix.Pix))
	if assets.IsPowerOfTwo(b.Dx()) && assets.IsPowerOfTwo(b.Dy()) {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// UploadCubemap creates a cube map from six faces in GL target order.
func (r *Renderer) UploadCubemap(faces [6]image.Image) (render.Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if err := r.setCubemap(id, faces); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, err
	}
	r.cubes[render.Texture(id)] = true
	return render.Texture(id), nil
}

// ReplaceCubemap re-specifies an existing cube map.
func (r *Renderer) ReplaceCubemap(h render.Texture, faces [6]image.Image) error {
	if !r.cubes[h] {
		return fmt.Errorf("texture %d is not a cube map", h)
	}
	return r.setCubemap(uint32(h), faces)
}

func (r *Renderer) setCubemap(id uint32, faces [6]image.Image) error {
	for i, f := range faces {
		if f == nil || f.Bounds().Empty() {
			return fmt.Errorf("cubemap face %s: empty image", assets.FaceNames[i])
		}
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, f := range faces {
		pix := assets.ToNRGBA(f)
		w, h := int32(pix.Rect.Dx()), int32(pix.Rect.Dy())
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return nil
}

// DeleteTextures frees the textures in t.
func (r *Renderer) DeleteTextures(t render.Textures) {
	for _, h := range []render.Texture{t.Box, t.Wood, t.Sail, t.Skybox} {
		if h == 0 {
			continue
		}
		id := uint32(h)
		gl.DeleteTextures(1, &id)
		delete(r.cubes, h)
	}
}
