// Package tesseract adapts the Tesseract OCR engine (via gosseract)
// to the ocr.Recognizer interface.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/FACorreiaa/findoc-insights/internal/ocr"
)

// Recognizer runs Tesseract over prepared images. It is not safe for
// concurrent use; the pipeline runs one document at a time.
type Recognizer struct {
	language string
}

// New returns a Recognizer for the given language ("eng" when empty).
func New(language string) *Recognizer {
	if language == "" {
		language = "eng"
	}
	return &Recognizer{language: language}
}

// Recognize encodes the image and hands it to Tesseract. LayoutUniformBlock
// maps to page segmentation mode 6 (assume a single uniform block of text).
func (r *Recognizer) Recognize(ctx context.Context, img image.Image, mode ocr.LayoutMode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image for ocr: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return "", fmt.Errorf("set ocr language %q: %w", r.language, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("load image into ocr engine: %w", err)
	}

	if mode == ocr.LayoutUniformBlock {
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
			return "", fmt.Errorf("set page segmentation mode: %w", err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
