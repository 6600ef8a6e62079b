package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"magazine-backend/internal/domains/magazine/model"
	"magazine-backend/internal/infrastructure/storage"
	"magazine-backend/internal/shared/crud"
)

var (
	// ErrStageFailed means the upload could not be written to the temp dir.
	ErrStageFailed = errors.New("failed to stage upload")
	// ErrStoreFailed means the staged file could not be moved into the asset store.
	ErrStoreFailed = errors.New("failed to store upload")
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadService stages a multipart image, checks its name, moves it into the
// asset store and points the magazine's image column at it.
type UploadService struct {
	magazines crud.Repository[model.Magazine]
	assets    storage.AssetStore
	tempDir   string
}

func NewUploadService(magazines crud.Repository[model.Magazine], assets storage.AssetStore, tempDir string) *UploadService {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &UploadService{
		magazines: magazines,
		assets:    assets,
		tempDir:   tempDir,
	}
}

// Stage copies the upload to <tempDir>/<uuid>-<client name> and returns that path.
func (s *UploadService) Stage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStageFailed, err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStageFailed, err)
	}

	path := filepath.Join(s.tempDir, uuid.NewString()+"-"+SafeName(fh.Filename))
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStageFailed, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %v", ErrStageFailed, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %v", ErrStageFailed, err)
	}

	return path, nil
}

// Attach moves a staged file into the asset store and records its public path
// on the magazine. A failed update leaves the stored asset in place.
func (s *UploadService) Attach(ctx context.Context, magazineKey int64, stagedPath string) (string, error) {
	name := filepath.Base(stagedPath)

	publicPath, err := s.assets.Store(ctx, stagedPath, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	log.Info().Str("asset", publicPath).Int64("magazine_key", magazineKey).Msg("📦 Image stored")

	if err := s.magazines.Update(ctx, magazineKey, crud.Fields{model.ImageField: publicPath}); err != nil {
		return publicPath, err
	}

	return publicPath, nil
}

// Discard removes a staged file that will not be stored.
func (s *UploadService) Discard(stagedPath string) {
	if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", stagedPath).Msg("⚠️ Failed to remove staged upload")
	}
}

// AllowedImage reports whether a staged file name contains "jpg" or "png".
// Only the name is inspected, never the content.
func AllowedImage(stagedPath string) bool {
	name := filepath.Base(stagedPath)
	return strings.Contains(name, "jpg") || strings.Contains(name, "png")
}

// SafeName reduces a client file name to a single path segment.
func SafeName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "upload"
	}
	return name
}
