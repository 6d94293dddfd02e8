package texture

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a 2D texture object.
type Texture struct {
	id     uint32
	Width  int
	Height int
}

// Load decodes name from fsys and uploads it with mipmaps.
func Load(fsys fs.FS, name string, opts DecodeOptions) (*Texture, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	return Upload(img), nil
}

// Upload creates a repeating, linearly filtered, mipmapped texture from img.
func Upload(img *image.RGBA) *Texture {
	t := &Texture{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.Width), int32(t.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Solid returns a 1x1 texture of one color, used when an image is missing.
func Solid(r, g, b, a uint8) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []byte{r, g, b, a})
	return Upload(img)
}

// Bind binds the texture to a texture unit (0 for GL_TEXTURE0).
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the texture object.
func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
