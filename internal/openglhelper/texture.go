package openglhelper

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v3.3-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Texture is a GPU texture bound to a fixed target.
type Texture struct {
	ID     uint32
	Target uint32 // GL_TEXTURE_2D or GL_TEXTURE_CUBE_MAP
}

// Bind makes the texture current on the given unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.Target, t.ID)
}

// Delete releases the texture.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}

// DecodeRGBA reads an image file in any registered format and converts it to RGBA.
func DecodeRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// LoadTexture2D uploads an image file as a mipmapped, repeating 2D texture.
func LoadTexture2D(path string) (*Texture, error) {
	rgba, err := DecodeRGBA(path)
	if err != nil {
		return nil, err
	}

	tex := &Texture{Target: gl.TEXTURE_2D}
	gl.GenTextures(1, &tex.ID)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex, nil
}

// LoadCubemap uploads six face images ordered +X, -X, +Y, -Y, +Z, -Z
// (right, left, top, bottom, back, front).
func LoadCubemap(faces []string) (*Texture, error) {
	if len(faces) != 6 {
		return nil, fmt.Errorf("cubemap needs 6 faces, got %d", len(faces))
	}

	tex := &Texture{Target: gl.TEXTURE_CUBE_MAP}
	gl.GenTextures(1, &tex.ID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for i, path := range faces {
		rgba, err := DecodeRGBA(path)
		if err != nil {
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
			tex.Delete()
			return nil, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return tex, nil
}

// TextureCache uploads each image path once.
type TextureCache struct {
	textures map[string]*Texture
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*Texture)}
}

// Get returns the texture for path, loading it on first use.
func (c *TextureCache) Get(path string) (*Texture, error) {
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}
	tex, err := LoadTexture2D(path)
	if err != nil {
		return nil, err
	}
	c.textures[path] = tex
	return tex, nil
}

// Len returns the number of uploaded textures.
func (c *TextureCache) Len() int {
	return len(c.textures)
}

// Delete releases every cached texture.
func (c *TextureCache) Delete() {
	for path, tex := range c.textures {
		tex.Delete()
		delete(c.textures, path)
	}
}
