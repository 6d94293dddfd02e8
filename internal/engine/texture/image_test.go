package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

// twoRows is a 1x2 image: red on top, blue at the bottom.
func twoRows() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestDecodeFlip(t *testing.T) {
	tests := []struct {
		name    string
		flip    bool
		wantTop color.RGBA
	}{
		{"no flip", false, color.RGBA{R: 255, A: 255}},
		{"flip", true, color.RGBA{B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := Decode(encodePNG(t, twoRows()), DecodeOptions{FlipY: tt.flip})
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if format != "png" {
				t.Errorf("format = %q, want png", format)
			}
			if got := img.RGBAAt(0, 0); got != tt.wantTop {
				t.Errorf("top pixel = %v, want %v", got, tt.wantTop)
			}
		})
	}
}

func TestDecodeDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 16))
	img, _, err := Decode(encodePNG(t, src), DecodeOptions{MaxSize: 32})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 8 {
		t.Errorf("size = %dx%d, want 32x8", b.Dx(), b.Dy())
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("not an image")), DecodeOptions{}); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 10, 10, 5},
		{50, 100, 10, 5, 10},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fit(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}
