package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const (
	MaxWidth    = 500
	MaxHeight   = 500
	JPEGQuality = 100
)

var (
	ErrEmptyImage        = errors.New("image is empty")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidImage      = errors.New("invalid image")
)

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func IsSupported(mimeType string) bool {
	return supportedTypes[mimeType]
}

// DetectType returns the sniffed MIME type and the matching file extension.
func DetectType(data []byte) (string, string) {
	mt := mimetype.Detect(data)
	return mt.String(), mt.Extension()
}

// EncodeBase64 decodes an uploaded image, fits it inside MaxWidth x MaxHeight
// keeping the aspect ratio, re-encodes it as JPEG and returns standard base64.
// Smaller images are not upscaled.
func EncodeBase64(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	if mimeType, _ := DetectType(data); !IsSupported(mimeType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	fitted := imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
