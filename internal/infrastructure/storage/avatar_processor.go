package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/you/contactsvc/domain"
	"golang.org/x/image/draw"
)

// MaxAvatarPixels caps the declared width x height of an uploaded image
const MaxAvatarPixels = 40_000_000

// AvatarProcessor implements domain.ImageProcessor: it crops the centre square
// of an image and scales it to size x size PNG
type AvatarProcessor struct {
	size      int
	maxPixels int64
}

// NewAvatarProcessor creates an avatar processor producing size x size images
func NewAvatarProcessor(size int) domain.ImageProcessor {
	if size <= 0 {
		size = 250
	}
	return &AvatarProcessor{size: size, maxPixels: MaxAvatarPixels}
}

// Normalize implements domain.ImageProcessor. The header is checked against
// the pixel cap before any pixel data is decoded.
func (p *AvatarProcessor) Normalize(r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to decode image: %v", domain.ErrInvalidInput, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.maxPixels {
		return nil, "", fmt.Errorf("%w: image is %dx%d, at most %d pixels are allowed",
			domain.ErrInvalidInput, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to decode image: %v", domain.ErrInvalidInput, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, p.size, p.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, centerSquare(img.Bounds()), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

// centerSquare returns the largest square centred in b
func centerSquare(b image.Rectangle) image.Rectangle {
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}
