package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// Max dimension and JPEG quality for product photos sent to the backend.
	// Phone camera originals are routinely several MB; the shop never shows
	// anything larger than this.
	maxUploadDim  = 1600
	uploadQuality = 82
)

// OptimizeForUpload downscales a product photo to the upload size and
// re-encodes it as JPEG. PNG, JPEG and anything else image.Decode handles
// are accepted.
func OptimizeForUpload(imageData []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	log.Printf("📸 Image decoded: format=%s, bounds=%v", format, img.Bounds())

	bounds := img.Bounds()
	resized := img
	if bounds.Dx() > maxUploadDim || bounds.Dy() > maxUploadDim {
		resized = imaging.Fit(img, maxUploadDim, maxUploadDim, imaging.Lanczos)
		log.Printf("🔄 Resizing image: %dx%d -> %v", bounds.Dx(), bounds.Dy(), resized.Bounds().Max)
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: uploadQuality}
	if err := jpeg.Encode(&buf, resized, opts); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	optimized := buf.Bytes()
	log.Printf("✓ Image optimized for upload: input=%d bytes, output=%d bytes", len(imageData), len(optimized))
	return optimized, nil
}
