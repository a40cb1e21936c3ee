package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/olegiv/showcase-go/internal/model"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareKeepsSmallImage(t *testing.T) {
	data := testPNG(t, 400, 300)

	result, err := Prepare(bytes.NewReader(data), model.DefaultUploadBounds)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if result.Width != 400 || result.Height != 300 {
		t.Errorf("dimensions changed: %dx%d", result.Width, result.Height)
	}
	if result.MimeType != model.MimeTypePNG {
		t.Errorf("mime type = %q, want %q", result.MimeType, model.MimeTypePNG)
	}
}

func TestPrepareScalesDownLargeImage(t *testing.T) {
	data := testPNG(t, 4000, 1000)

	result, err := Prepare(bytes.NewReader(data), model.UploadBounds{Width: 1920, Height: 1080, Quality: 85})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if result.Width > 1920 || result.Height > 1080 {
		t.Errorf("image exceeds bounds: %dx%d", result.Width, result.Height)
	}
	// Aspect ratio 4:1 must survive the resize.
	if result.Width != 1920 || result.Height != 480 {
		t.Errorf("expected 1920x480, got %dx%d", result.Width, result.Height)
	}
}

func TestPrepareRejectsNonImage(t *testing.T) {
	if _, err := Prepare(bytes.NewReader([]byte("definitely not an image")), model.DefaultUploadBounds); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestDetectMimeType(t *testing.T) {
	data := testPNG(t, 10, 10)
	if got := DetectMimeType(data); got != model.MimeTypePNG {
		t.Errorf("DetectMimeType = %q, want %q", got, model.MimeTypePNG)
	}
}
