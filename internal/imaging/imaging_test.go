package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createTestJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255}))
	return buf.Bytes()
}

func decodeResult(t *testing.T, p *Photo) image.Rectangle {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return img.Bounds()
}

func TestProcessJPEG(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestJPEG(100, 100)))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNGBecomesJPEG(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestPNG(100, 100)))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
}

func TestProcessDownscaleKeepsAspect(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestPNG(1600, 400)))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	b := decodeResult(t, result)
	if b.Dx() != MaxDimension || b.Dy() != 200 {
		t.Errorf("expected %dx200, got %dx%d", MaxDimension, b.Dx(), b.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestJPEG(50, 50)))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}

	b := decodeResult(t, result)
	if b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessRejectsUnknownFormats(t *testing.T) {
	for _, data := range []string{"not an image", "GIF89a..."} {
		_, err := Process(strings.NewReader(data))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%q: expected ErrUnsupportedFormat, got %v", data, err)
		}
	}
}

func TestProcessTooLarge(t *testing.T) {
	_, err := Process(bytes.NewReader(make([]byte, MaxUploadBytes+1)))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
