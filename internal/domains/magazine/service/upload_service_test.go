package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-backend/internal/domains/magazine/model"
	"magazine-backend/internal/infrastructure/storage"
	"magazine-backend/internal/shared/crud"
)

type stubMagazines struct {
	updated map[int64]crud.Fields
	err     error
}

func (s *stubMagazines) Create(context.Context, crud.Fields) (int64, error) { return 0, nil }

func (s *stubMagazines) Read(context.Context, int, int) ([]model.Magazine, error) { return nil, nil }

func (s *stubMagazines) Update(_ context.Context, key int64, fields crud.Fields) error {
	if s.err != nil {
		return s.err
	}
	if s.updated == nil {
		s.updated = map[int64]crud.Fields{}
	}
	s.updated[key] = fields
	return nil
}

func (s *stubMagazines) Delete(context.Context, int64) error { return nil }

type failingStore struct{}

func (failingStore) Store(context.Context, string, string) (string, error) {
	return "", errors.New("disk full")
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/photo/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestAllowedImage(t *testing.T) {
	assert.True(t, AllowedImage("/tmp/abc-cover.png"))
	assert.True(t, AllowedImage("/tmp/abc-cover.jpg"))
	assert.True(t, AllowedImage("/tmp/abc-my_jpg_notes.txt"))
	assert.False(t, AllowedImage("/tmp/abc-cover.gif"))
	assert.False(t, AllowedImage("/png/abc-cover.gif"))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "cover.png", SafeName("cover.png"))
	assert.Equal(t, "passwd", SafeName("../../etc/passwd"))
	assert.Equal(t, "evil.png", SafeName(`C:\Users\me\evil.png`))
	assert.Equal(t, "my_cover_1_.jpg", SafeName("my cover (1).jpg"))
	assert.Equal(t, "upload", SafeName(""))
	assert.Equal(t, "htaccess", SafeName(".htaccess"))
}

func TestStageAndAttach(t *testing.T) {
	tempDir := t.TempDir()
	assetDir := t.TempDir()

	assets, err := storage.NewLocalStorage(assetDir, "/assets")
	require.NoError(t, err)
	magazines := &stubMagazines{}
	svc := NewUploadService(magazines, assets, tempDir)

	staged, err := svc.Stage(fileHeader(t, "cover.png", []byte("fake png")))
	require.NoError(t, err)
	assert.Equal(t, tempDir, filepath.Dir(staged))
	assert.True(t, strings.HasSuffix(staged, "-cover.png"))

	path, err := svc.Attach(context.Background(), 5, staged)
	require.NoError(t, err)

	name := filepath.Base(staged)
	assert.Equal(t, "/assets/"+name, path)
	assert.Equal(t, crud.Fields{"image": path}, magazines.updated[5])

	data, err := os.ReadFile(filepath.Join(assetDir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake png", string(data))

	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))
}

func TestAttachStoreFailure(t *testing.T) {
	svc := NewUploadService(&stubMagazines{}, failingStore{}, t.TempDir())

	staged, err := svc.Stage(fileHeader(t, "cover.jpg", []byte("x")))
	require.NoError(t, err)

	_, err = svc.Attach(context.Background(), 1, staged)
	assert.ErrorIs(t, err, ErrStoreFailed)
}

func TestAttachUpdateFailureKeepsAsset(t *testing.T) {
	assetDir := t.TempDir()
	assets, err := storage.NewLocalStorage(assetDir, "/assets")
	require.NoError(t, err)

	svc := NewUploadService(&stubMagazines{err: crud.ErrNotFound}, assets, t.TempDir())

	staged, err := svc.Stage(fileHeader(t, "cover.png", []byte("x")))
	require.NoError(t, err)

	_, err = svc.Attach(context.Background(), 404, staged)
	assert.ErrorIs(t, err, crud.ErrNotFound)

	_, err = os.Stat(filepath.Join(assetDir, filepath.Base(staged)))
	assert.NoError(t, err)
}

func TestDiscard(t *testing.T) {
	svc := NewUploadService(&stubMagazines{}, failingStore{}, t.TempDir())

	staged, err := svc.Stage(fileHeader(t, "notes.txt", []byte("x")))
	require.NoError(t, err)

	svc.Discard(staged)
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))

	svc.Discard(staged)
}
