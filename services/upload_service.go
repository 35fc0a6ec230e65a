package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/repository"
)

// UploadService, görsel yükleme iş mantığı interface'i.
//
// Upload, dosyayı doğrular, diske kaydeder ve images tablosuna kayıt açar.
// Dosyalar /api/uploads/ altından statik sunulur — kayıt URL taşır.
type UploadService interface {
	Upload(ctx context.Context, ownerType models.ImageOwnerType, ownerID string, file multipart.File, header *multipart.FileHeader) (*models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type uploadService struct {
	imageRepo repository.ImageRepository
	uploadDir string
	maxSize   int64
}

// NewUploadService, constructor.
func NewUploadService(
	imageRepo repository.ImageRepository,
	uploadDir string,
	maxSize int64,
) UploadService {
	return &uploadService{
		imageRepo: imageRepo,
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

// allowedImageTypes, yüklemeye izin verilen görsel türleri.
// Ürün ve blog görselleri dışında dosya kabul edilmez.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload, görseli doğrular, diske kaydeder ve DB'ye image kaydı oluşturur.
//
// Akış:
// 1. Boyut kontrolü — maxSize üstü reddedilir
// 2. MIME type kontrolü — sadece görsel formatları
// 3. Unique dosya adı: {random_hex}_{sanitized_original}
// 4. Diske yaz — yazma hatasında yarım dosya silinir
// 5. DB kaydı — kayıt hatasında diskteki dosya da silinir
//
// Disk hataları ErrExternal olur — client için bu, harici depolamanın
// geçici sorunu demektir (502), istek hatası değil.
func (s *uploadService) Upload(ctx context.Context, ownerType models.ImageOwnerType, ownerID string, file multipart.File, header *multipart.FileHeader) (*models.Image, error) {
	if header.Size > s.maxSize {
		return nil, fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	// Sadece base MIME type'ı al (charset vb. parametre olabilir)
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])

	if !allowedImageTypes[mimeBase] {
		return nil, fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	// Unique dosya adı — çakışma ve path traversal'a karşı
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random filename: %w", err)
	}
	safeFilename := sanitizeFilename(header.Filename)
	diskFilename := hex.EncodeToString(randomBytes) + "_" + safeFilename

	destPath := filepath.Join(s.uploadDir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to store file", pkg.ErrExternal)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("%w: failed to store file", pkg.ErrExternal)
	}

	image := &models.Image{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		FileName:  header.Filename,
		URL:       "/api/uploads/" + diskFilename,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to create image record: %w", err)
	}

	return image, nil
}

// Delete, image kaydını ve diskteki dosyayı siler.
// Diskte dosya kalmışsa ama kayıt yoksa 404 döner — disk temizliği yapılmaz.
func (s *uploadService) Delete(ctx context.Context, imageID string) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	// URL → disk dosya adı: "/api/uploads/{diskFilename}"
	diskFilename := strings.TrimPrefix(image.URL, "/api/uploads/")
	if err := os.Remove(filepath.Join(s.uploadDir, diskFilename)); err != nil && !os.IsNotExist(err) {
		// Kayıt silindi, dosya kaldı — isteği başarısız sayma.
		log.Printf("[upload] failed to remove file %s: %v", diskFilename, err)
	}

	return nil
}

// sanitizeFilename, dosya adını güvenli hale getirir.
// Path traversal saldırılarını önler (../../etc/passwd gibi).
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '\x00' {
			return -1
		}
		return r
	}, name)

	if name == "" || name == "." || name == ".." {
		name = "unnamed"
	}

	return name
}
