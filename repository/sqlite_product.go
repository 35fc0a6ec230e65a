package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/vitrin/database"
	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/google/uuid"
)

// sqliteProductRepo, ProductRepository interface'inin SQLite implementasyonu.
type sqliteProductRepo struct {
	db database.TxQuerier
}

// NewSQLiteProductRepo, constructor — interface döner.
func NewSQLiteProductRepo(db database.TxQuerier) ProductRepository {
	return &sqliteProductRepo{db: db}
}

const productColumns = `id, title, slug, description, category, brand,
	price, quantity, sold, color, total_rating, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Category, &p.Brand,
		&p.Price, &p.Quantity, &p.Sold, &p.Color, &p.TotalRating,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *sqliteProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = uuid.NewString()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (id, title, slug, description, category, brand,
			price, quantity, sold, color, total_rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Title, product.Slug, product.Description,
		product.Category, product.Brand, product.Price, product.Quantity,
		product.Sold, product.Color, product.TotalRating,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		// Slug UNIQUE — aynı title'dan türeyen slug çakışması.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: product with this slug already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID, ürünü rating ve görsel listeleriyle birlikte yükler.
func (r *sqliteProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p := &models.Product{}
	err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id), p)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	ratings, err := r.loadRatings(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Ratings = ratings

	images, err := loadImages(ctx, r.db, models.ImageOwnerProduct, id)
	if err != nil {
		return nil, err
	}
	p.Images = images

	return p, nil
}

// List, filtre/sıralama/sayfalama uygulanmış ürün listesini döner.
// Liste görünümünde rating ve görsel detayları yüklenmez (N+1 önlemi) —
// tam entity için GetByID kullanılır.
func (r *sqliteProductRepo) List(ctx context.Context, query *models.ProductQuery) ([]models.Product, error) {
	where, args := buildProductFilter(query)

	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}

	// SortBy, models.ParseProductQuery'deki whitelist'ten gelir —
	// doğrudan string birleştirme burada güvenlidir.
	sqlQuery := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY ` + query.SortBy + ` ` + direction +
		` LIMIT ? OFFSET ?`
	args = append(args, query.Limit, query.Offset())

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

func (r *sqliteProductRepo) Count(ctx context.Context, query *models.ProductQuery) (int, error) {
	where, args := buildProductFilter(query)

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func (r *sqliteProductRepo) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET title = ?, slug = ?, description = ?, category = ?, brand = ?,
			price = ?, quantity = ?, color = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		product.Title, product.Slug, product.Description, product.Category,
		product.Brand, product.Price, product.Quantity, product.Color,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: product with this slug already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteProductRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteProductRepo) loadRatings(ctx context.Context, productID string) ([]models.Rating, error) {
	query := `
		SELECT id, product_id, posted_by, star, created_at, updated_at
		FROM ratings WHERE product_id = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.ProductID, &rt.PostedBy, &rt.Star,
			&rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating rows: %w", err)
	}

	return ratings, nil
}

// buildProductFilter, ProductQuery'den WHERE clause ve arg listesi üretir.
// List ve Count aynı filtreyi paylaşır — sayfa hesabı tutarlı kalır.
func buildProductFilter(query *models.ProductQuery) (string, []any) {
	var conditions []string
	var args []any

	if query.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, query.Category)
	}
	if query.Brand != "" {
		conditions = append(conditions, "brand = ?")
		args = append(args, query.Brand)
	}
	if query.PriceMin != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *query.PriceMin)
	}
	if query.PriceMax != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *query.PriceMax)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// loadImages, bir entity'nin görsel kayıtlarını yükler.
// Hem product hem blog repo'su kullanır — paket seviyesinde paylaşılır.
func loadImages(ctx context.Context, db database.TxQuerier, ownerType models.ImageOwnerType, ownerID string) ([]models.Image, error) {
	query := `
		SELECT id, owner_type, owner_id, file_name, url, created_at
		FROM images WHERE owner_type = ? AND owner_id = ? ORDER BY created_at ASC`

	rows, err := db.QueryContext(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.OwnerType, &img.OwnerID,
			&img.FileName, &img.URL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image rows: %w", err)
	}

	return images, nil
}
