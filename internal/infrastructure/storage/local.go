package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// LocalStorage keeps uploads in a directory served under urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage tạo asset directory nếu chưa có
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset dir: %w", err)
	}

	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *LocalStorage) Dir() string { return s.dir }

// Store moves src into the asset directory. Rename fails across devices
// (temp dir on tmpfs), in which case the file is copied and the source removed.
func (s *LocalStorage) Store(_ context.Context, src, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, name)
	if err := os.Rename(src, dst); err != nil {
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("failed to move upload: %w", err)
		}
		if err := os.Remove(src); err != nil {
			log.Warn().Err(err).Str("path", src).Msg("failed to remove staged upload")
		}
	}

	return path.Join(s.urlPrefix, name), nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
