package testsupport

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// TextImage wraps a phrase as an image payload. The stub recognition engine
// reads the bytes back out as the extracted text, so tests can script OCR
// results without real images.
func TextImage(text string) *interfaces.ImagePayload {
	return &interfaces.ImagePayload{
		URI:  "memory://text-image",
		Data: []byte(text),
		MIME: "text/plain",
	}
}

// PNGImage returns a valid single-pixel PNG payload for paths that need real
// image bytes, such as wire encoding tests.
func PNGImage() *interfaces.ImagePayload {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("testsupport: encode png: " + err.Error())
	}
	return &interfaces.ImagePayload{
		URI:  "memory://pixel.png",
		Data: buf.Bytes(),
		MIME: "image/png",
	}
}
