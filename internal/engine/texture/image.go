// Package texture decodes images and uploads them as 2D GL textures.
package texture

import (
	"fmt"
	"image"
	"io"

	// Formats accepted by Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DecodeOptions control how an image is prepared for upload.
type DecodeOptions struct {
	// FlipY puts the first row of the image at the bottom, matching GL's
	// texture coordinate origin.
	FlipY bool
	// MaxSize downscales images whose larger side exceeds it. Zero disables.
	MaxSize int
}

// Decode reads an image and converts it to tightly packed RGBA.
func Decode(r io.Reader, opts DecodeOptions) (*image.RGBA, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, format, fmt.Errorf("decode image: empty %s image", format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.MaxSize > 0 && (w > opts.MaxSize || h > opts.MaxSize) {
		w, h = fit(w, h, opts.MaxSize)
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}

	if opts.FlipY {
		FlipVertical(dst)
	}
	return dst, format, nil
}

// fit scales w×h so the larger side equals limit, keeping the aspect ratio.
func fit(w, h, limit int) (int, int) {
	if w >= h {
		nh := h * limit / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := w * limit / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	rowLen := img.Bounds().Dx() * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
