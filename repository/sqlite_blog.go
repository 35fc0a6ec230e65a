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

// sqliteBlogRepo, BlogRepository interface'inin SQLite implementasyonu.
type sqliteBlogRepo struct {
	db database.TxQuerier
}

// NewSQLiteBlogRepo, constructor — interface döner.
func NewSQLiteBlogRepo(db database.TxQuerier) BlogRepository {
	return &sqliteBlogRepo{db: db}
}

const blogColumns = `id, title, slug, description, category, author,
	num_views, created_at, updated_at`

func scanBlog(row interface{ Scan(...any) error }, b *models.Blog) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Description, &b.Category, &b.Author,
		&b.NumViews, &b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *sqliteBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	blog.ID = uuid.NewString()
	now := time.Now().UTC()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	query := `
		INSERT INTO blogs (id, title, slug, description, category, author,
			num_views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		blog.ID, blog.Title, blog.Slug, blog.Description, blog.Category,
		blog.Author, blog.NumViews, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: blog with this slug already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

// GetByID, blogu tepki kümeleri ve görselleriyle birlikte yükler.
func (r *sqliteBlogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	b := &models.Blog{}
	err := scanBlog(r.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id), b)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog by id: %w", err)
	}

	if err := r.loadReactions(ctx, b); err != nil {
		return nil, err
	}

	images, err := loadImages(ctx, r.db, models.ImageOwnerBlog, id)
	if err != nil {
		return nil, err
	}
	b.Images = images

	return b, nil
}

func (r *sqliteBlogRepo) GetAll(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all blogs: %w", err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		var b models.Blog
		if err := scanBlog(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		b.Likes = []string{}
		b.Dislikes = []string{}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

func (r *sqliteBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	blog.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE blogs
		SET title = ?, slug = ?, description = ?, category = ?, author = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		blog.Title, blog.Slug, blog.Description, blog.Category,
		blog.Author, blog.UpdatedAt, blog.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: blog with this slug already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update blog: %w", err)
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

func (r *sqliteBlogRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
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

// IncrementViews, görüntülenme sayacını tek atomik UPDATE ile artırır.
func (r *sqliteBlogRepo) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET num_views = num_views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
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

// loadReactions, blogun likes/dislikes kümelerini doldurur.
func (r *sqliteBlogRepo) loadReactions(ctx context.Context, b *models.Blog) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, kind FROM blog_reactions WHERE blog_id = ? ORDER BY created_at ASC`,
		b.ID)
	if err != nil {
		return fmt.Errorf("failed to load reactions: %w", err)
	}
	defer rows.Close()

	b.Likes = []string{}
	b.Dislikes = []string{}
	for rows.Next() {
		var userID string
		var kind models.ReactionKind
		if err := rows.Scan(&userID, &kind); err != nil {
			return fmt.Errorf("failed to scan reaction row: %w", err)
		}
		if kind == models.ReactionLike {
			b.Likes = append(b.Likes, userID)
		} else {
			b.Dislikes = append(b.Dislikes, userID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating reaction rows: %w", err)
	}

	return nil
}
