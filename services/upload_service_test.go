package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageRepo struct {
	images     map[string]*models.Image
	failCreate bool
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[string]*models.Image)}
}

func (f *fakeImageRepo) Create(ctx context.Context, image *models.Image) error {
	if f.failCreate {
		return assert.AnError
	}
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	cp := *image
	f.images[image.ID] = &cp
	return nil
}

func (f *fakeImageRepo) GetByID(ctx context.Context, id string) (*models.Image, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *img
	return &cp, nil
}

func (f *fakeImageRepo) ListByOwner(ctx context.Context, ownerType models.ImageOwnerType, ownerID string) ([]models.Image, error) {
	var out []models.Image
	for _, img := range f.images {
		if img.OwnerType == ownerType && img.OwnerID == ownerID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (f *fakeImageRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.images[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(f.images, id)
	return nil
}

// memFile, multipart.File interface'ini bellekte karşılar.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadArgs(filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: filename,
		Size:     int64(len(content)),
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
	}
	return memFile{bytes.NewReader(content)}, header
}

func newUploadFixture(t *testing.T) (*fakeImageRepo, string, UploadService) {
	t.Helper()
	repo := newFakeImageRepo()
	dir := t.TempDir()
	svc := NewUploadService(repo, dir, 1024)
	return repo, dir, svc
}

func TestUploadStoresFileAndRecord(t *testing.T) {
	repo, dir, svc := newUploadFixture(t)

	file, header := uploadArgs("photo.png", "image/png", []byte("png-bytes"))
	image, err := svc.Upload(context.Background(), models.ImageOwnerProduct, "p1", file, header)
	require.NoError(t, err)

	assert.Equal(t, models.ImageOwnerProduct, image.OwnerType)
	assert.Equal(t, "p1", image.OwnerID)
	assert.Equal(t, "photo.png", image.FileName)
	require.True(t, strings.HasPrefix(image.URL, "/api/uploads/"))

	// Diskteki ad random prefix taşır: {hex}_photo.png
	diskName := strings.TrimPrefix(image.URL, "/api/uploads/")
	assert.True(t, strings.HasSuffix(diskName, "_photo.png"))

	content, err := os.ReadFile(filepath.Join(dir, diskName))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)

	require.Len(t, repo.images, 1)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	_, dir, svc := newUploadFixture(t)

	cases := []struct {
		filename    string
		contentType string
	}{
		{"script.html", "text/html"},
		{"payload.svg", "image/svg+xml"}, // script taşıyabilir
		{"archive.zip", "application/zip"},
		{"noheader.png", ""},
	}

	for _, tc := range cases {
		file, header := uploadArgs(tc.filename, tc.contentType, []byte("x"))
		_, err := svc.Upload(context.Background(), models.ImageOwnerBlog, "b1", file, header)
		require.ErrorIs(t, err, pkg.ErrBadRequest, "type: %q", tc.contentType)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries) // reddedilen yükleme diske dokunmaz
}

func TestUploadAcceptsContentTypeWithParams(t *testing.T) {
	_, _, svc := newUploadFixture(t)

	file, header := uploadArgs("a.jpg", "image/jpeg; charset=binary", []byte("x"))
	_, err := svc.Upload(context.Background(), models.ImageOwnerProduct, "p1", file, header)
	require.NoError(t, err)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	_, _, svc := newUploadFixture(t) // maxSize=1024

	file, header := uploadArgs("big.png", "image/png", bytes.Repeat([]byte("a"), 2048))
	_, err := svc.Upload(context.Background(), models.ImageOwnerProduct, "p1", file, header)
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestUploadCleansUpOnRecordFailure(t *testing.T) {
	repo, dir, svc := newUploadFixture(t)
	repo.failCreate = true

	file, header := uploadArgs("photo.png", "image/png", []byte("x"))
	_, err := svc.Upload(context.Background(), models.ImageOwnerProduct, "p1", file, header)
	require.Error(t, err)

	// DB kaydı başarısız — diskteki dosya geri alınır.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestUploadDeleteRemovesFileAndRecord(t *testing.T) {
	repo, dir, svc := newUploadFixture(t)

	file, header := uploadArgs("photo.png", "image/png", []byte("x"))
	image, err := svc.Upload(context.Background(), models.ImageOwnerProduct, "p1", file, header)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), image.ID))
	assert.Empty(t, repo.images)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.ErrorIs(t, svc.Delete(context.Background(), image.ID), pkg.ErrNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":        "photo.png",
		"../../etc/passwd": "passwd",
		"..":               "unnamed",
		"":                 "unnamed",
		"dir/sub/evil.sh":  "evil.sh",
		// Linux'ta backslash path ayracı değildir — karakter olarak düşer.
		"back\\slash\\x.png": "backslashx.png",
	}

	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), "input: %q", in)
	}
}
