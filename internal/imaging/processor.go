// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package imaging processes storefront image uploads: brand logos,
// profile pictures and banner photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxUploadBytes caps the size of an accepted upload.
const MaxUploadBytes = 10 << 20

// Full-size images are capped at this edge length; thumbnails at Thumb.
const (
	maxEdge   = 1600
	thumbEdge = 320
)

// Result describes a stored upload.
type Result struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumbUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
}

// Processor validates, normalizes and stores uploaded images.
type Processor struct {
	uploadDir string
	publicURL string
}

// NewProcessor creates an image processor writing under uploadDir.
// publicURL prefixes the returned asset URLs.
func NewProcessor(uploadDir, publicURL string) *Processor {
	return &Processor{
		uploadDir: uploadDir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Process reads an upload, auto-orients it, resizes oversized images
// and writes a full-size copy plus a thumbnail. Filenames are random;
// the original name only contributes its extension.
func (p *Processor) Process(reader io.Reader, originalName string) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", MaxUploadBytes)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readOrientation(bytes.NewReader(data)))
	if b := img.Bounds(); b.Dx() > maxEdge || b.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}

	id := uuid.NewString()
	ext := extFor(format)

	full, err := encode(img, format, 90)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	fullName := id + ext
	if err := p.save(fullName, full); err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, thumbEdge, thumbEdge, imaging.Lanczos)
	thumbData, err := encode(thumb, format, 82)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	thumbName := id + "_thumb" + ext
	if err := p.save(thumbName, thumbData); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Result{
		URL:      p.publicURL + "/uploads/" + fullName,
		ThumbURL: p.publicURL + "/uploads/" + thumbName,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Size:     int64(len(full)),
	}, nil
}

// IsSupportedType reports whether a MIME type can be processed.
func (p *Processor) IsSupportedType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

// DetectMimeType sniffs the MIME type of image data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

func (p *Processor) save(name string, data []byte) error {
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}
	path := filepath.Join(p.uploadDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// readOrientation reads the EXIF orientation tag, defaulting to 1.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		// WebP has no pure Go encoder; webp input comes back out as JPEG.
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is rejected (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func extFor(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
