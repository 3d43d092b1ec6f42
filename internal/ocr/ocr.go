// Package ocr defines the text-recognition capability the extraction
// pipeline requires from its OCR engine. The core never talks to an
// engine directly; it consumes the Recognizer interface so tests can
// substitute canned text and deployments can swap engines.
package ocr

import (
	"context"
	"image"
)

// LayoutMode tells the engine what page layout to assume.
type LayoutMode int

const (
	// LayoutAuto lets the engine segment the page on its own.
	LayoutAuto LayoutMode = iota
	// LayoutUniformBlock assumes a single uniform block of text,
	// the right assumption for payslips and expense statements.
	LayoutUniformBlock
)

// Recognizer converts a prepared (binarized) image into raw multi-line text.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, mode LayoutMode) (string, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, img image.Image, mode LayoutMode) (string, error)

// Recognize implements Recognizer.
func (f RecognizerFunc) Recognize(ctx context.Context, img image.Image, mode LayoutMode) (string, error) {
	return f(ctx, img, mode)
}
