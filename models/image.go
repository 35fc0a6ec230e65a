package models

import "time"

// ImageOwnerType, görselin hangi entity'ye ait olduğunu belirtir.
type ImageOwnerType string

const (
	ImageOwnerProduct ImageOwnerType = "product"
	ImageOwnerBlog    ImageOwnerType = "blog"
)

// Image, yüklenmiş bir görselin kaydıdır.
// Dosya diskte durur; URL, /api/uploads/ altından sunulur.
type Image struct {
	ID        string         `json:"id"`
	OwnerType ImageOwnerType `json:"owner_type"`
	OwnerID   string         `json:"owner_id"`
	FileName  string         `json:"file_name"`
	URL       string         `json:"url"`
	CreatedAt time.Time      `json:"created_at"`
}
