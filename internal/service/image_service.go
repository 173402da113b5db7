package service

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"

	"mingle/internal/config"
	"mingle/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	// Register decoders for the formats accepted on upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	imageMaxSize = 2048
	webpQuality  = 80
)

// ImageService normalizes uploads to webp and stores them on disk under a
// random name. The returned URL path is what gets persisted on posts and
// avatars.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewImageService returns a new ImageService configured from cfg.
func NewImageService(cfg *config.Config) *ImageService {
	return &ImageService{
		uploadDir:          cfg.UploadDir,
		maxUploadSizeBytes: int64(cfg.MaxUploadSizeMB) * 1024 * 1024,
	}
}

// Save validates, re-encodes and writes the uploaded image, returning the
// public URL path for the stored file.
func (s *ImageService) Save(content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("no file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(
			fmt.Sprintf("file too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	switch http.DetectContentType(content) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return "", models.NewValidationError("unsupported image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("invalid image file")
	}

	resized := resizeToFit(decoded, imageMaxSize, imageMaxSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: webpQuality}); err != nil {
		return "", models.NewStoreError(err)
	}

	name := uuid.NewString() + ".webp"
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return "", models.NewStoreError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), buf.Bytes(), 0o600); err != nil {
		return "", models.NewStoreError(err)
	}

	return "/uploads/" + name, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
