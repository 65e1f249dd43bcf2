package application

import (
	"bytes"
	"fmt"
	"image"

	// Gallery uploads arrive as browser image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// File and dimension gates for gallery images, mirroring the registration
// form's published limits.
const (
	MinFileSize = 50 * 1024
	MaxFileSize = 5 * 1024 * 1024

	MinImageWidth  = 800
	MinImageHeight = 600
	MaxImageWidth  = 4096
	MaxImageHeight = 4096

	// GalleryLimit caps persisted plus staged images per listing.
	GalleryLimit = 5
)

// StagedImage is a locally selected file not yet uploaded to object storage.
type StagedImage struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageRejection explains why one staged file was refused.
type ImageRejection struct {
	Name   string
	Reason string
}

// ErrGalleryLimit rejects an entire incoming batch that would push the
// gallery past GalleryLimit. No file of the batch is accepted.
var ErrGalleryLimit = fmt.Errorf("la galería admite un máximo de %d imágenes", GalleryLimit)

// StageImages validates an incoming batch against the gallery cap and the
// per-file gates. Files are judged individually: invalid ones come back with
// a reason, valid ones proceed to staging.
func StageImages(existingCount int, incoming []StagedImage) ([]StagedImage, []ImageRejection, error) {
	if existingCount+len(incoming) > GalleryLimit {
		return nil, nil, ErrGalleryLimit
	}

	valid := make([]StagedImage, 0, len(incoming))
	var rejected []ImageRejection
	for _, file := range incoming {
		if reason := validateImage(file); reason != "" {
			rejected = append(rejected, ImageRejection{Name: file.Name, Reason: reason})
			continue
		}
		valid = append(valid, file)
	}
	return valid, rejected, nil
}

// validateImage returns an empty string when the file passes every gate.
// Byte-size gates run before decoding so oversized payloads are refused
// without touching the image codecs.
func validateImage(file StagedImage) string {
	if len(file.Data) < MinFileSize {
		return fmt.Sprintf("\"%s\" es muy liviana (mín: 50KB)", file.Name)
	}
	if len(file.Data) > MaxFileSize {
		return fmt.Sprintf("\"%s\" es muy pesada (máx: 5MB)", file.Name)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return fmt.Sprintf("no se pudo leer \"%s\"", file.Name)
	}

	if cfg.Width < MinImageWidth || cfg.Height < MinImageHeight {
		return fmt.Sprintf("\"%s\" es muy pequeña (%dx%dpx, mínimo %dx%dpx)",
			file.Name, cfg.Width, cfg.Height, MinImageWidth, MinImageHeight)
	}
	if cfg.Width > MaxImageWidth || cfg.Height > MaxImageHeight {
		return fmt.Sprintf("\"%s\" es muy grande (%dx%dpx, máximo %dx%dpx)",
			file.Name, cfg.Width, cfg.Height, MaxImageWidth, MaxImageHeight)
	}
	return ""
}
