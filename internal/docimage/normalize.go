// Package docimage prepares uploaded document images for OCR.
// It converts raster input to a binary (two-level) image using
// Otsu's method so the foreground/background boundary adapts to
// the document instead of relying on a fixed brightness cutoff.
package docimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// ErrDecode indicates the input bytes could not be interpreted as an image.
var ErrDecode = errors.New("docimage: cannot decode image")

// Normalize decodes an image and returns an OCR-ready binary version of it.
// The output has identical bounds to the input; every pixel is either
// black (0) or white (255). The transform is pure: the reader is consumed
// but nothing else is touched.
func Normalize(r io.Reader) (*image.Gray, error) {
	src, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Binarize(src), nil
}

// Binarize converts an already-decoded image to a two-level grayscale image
// using a global Otsu threshold.
func Binarize(src image.Image) *image.Gray {
	gray := toGray(src)
	threshold := otsuThreshold(gray)

	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, whitePixel)
			} else {
				out.SetGray(x, y, blackPixel)
			}
		}
	}
	return out
}

var (
	whitePixel = color.Gray{Y: 255}
	blackPixel = color.Gray{Y: 0}
)

func toGray(src image.Image) *image.Gray {
	grayscale := imaging.Grayscale(src)
	bounds := grayscale.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale output has R==G==B, any channel works.
			r, _, _, _ := grayscale.At(x, y).RGBA()
			gray.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}
	return gray
}

// otsuThreshold computes the global threshold that maximizes between-class
// variance over the 256-bin intensity histogram.
func otsuThreshold(img *image.Gray) uint8 {
	var histogram [256]int
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			histogram[img.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, count := range histogram {
		sum += float64(i) * float64(count)
	}

	var (
		sumBackground    float64
		weightBackground int
		maxVariance      float64
		threshold        uint8
	)
	for i := 0; i < 256; i++ {
		weightBackground += histogram[i]
		if weightBackground == 0 {
			continue
		}
		weightForeground := total - weightBackground
		if weightForeground == 0 {
			break
		}

		sumBackground += float64(i) * float64(histogram[i])
		meanBackground := sumBackground / float64(weightBackground)
		meanForeground := (sum - sumBackground) / float64(weightForeground)

		diff := meanBackground - meanForeground
		variance := float64(weightBackground) * float64(weightForeground) * diff * diff
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(i)
		}
	}
	return threshold
}
