package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"seatrade/internal/domain"
	"seatrade/internal/util"
	"seatrade/internal/validation"
)

// ProductService manages the export catalogue
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a new product service
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// List returns all products; featured first, then by name. An empty category returns
// every product.
func (s *ProductService) List(ctx context.Context, category string) ([]domain.Product, error) {
	out := []domain.Product{}
	q := s.db.WithContext(ctx).Order("featured DESC").Order("name ASC")
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return out, nil
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("product %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &p, nil
}

// Create adds a product. The slug is derived from the name and made unique.
func (s *ProductService) Create(ctx context.Context, in *validation.ProductInput) (*domain.Product, error) {
	if err := invalid(validation.Product(*in)); err != nil {
		return nil, err
	}

	p := &domain.Product{}
	applyProduct(p, in)

	slug, err := uniqueSlug(ctx, s.db, &domain.Product{}, util.Slugify(p.Name), 0)
	if err != nil {
		return nil, err
	}
	p.Slug = slug

	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	log.Printf("[PRODUCT] Create successful: id=%d, slug=%s", p.ID, p.Slug)
	return p, nil
}

// Update replaces a product's fields. The slug is kept stable.
func (s *ProductService) Update(ctx context.Context, id uint, in *validation.ProductInput) (*domain.Product, error) {
	if err := invalid(validation.Product(*in)); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProduct(p, in)
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	log.Printf("[PRODUCT] Update successful: id=%d", p.ID)
	return p, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("product %d not found", id)
	}
	log.Printf("[PRODUCT] Delete successful: id=%d", id)
	return nil
}

func applyProduct(p *domain.Product, in *validation.ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Category = strings.TrimSpace(in.Category)
	p.Description = strings.TrimSpace(in.Description)
	p.Origin = strings.TrimSpace(in.Origin)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Featured = in.Featured
}

// BlogService manages blog posts
type BlogService struct {
	db *gorm.DB
}

// NewBlogService creates a new blog service
func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// ListPublished returns live posts, most recently published first.
func (s *BlogService) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	out := []domain.BlogPost{}
	if err := s.db.WithContext(ctx).Where("published = ?", true).Order("published_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return out, nil
}

// GetPublished returns a live post by slug. Drafts are reported as not found.
func (s *BlogService) GetPublished(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := s.db.WithContext(ctx).Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post %q not found", slug)
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &post, nil
}

// ListAll returns drafts and published posts, newest first.
func (s *BlogService) ListAll(ctx context.Context) ([]domain.BlogPost, error) {
	out := []domain.BlogPost{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return out, nil
}

// Create adds a post. Without an explicit slug one is derived from the title.
func (s *BlogService) Create(ctx context.Context, in *validation.BlogPostInput) (*domain.BlogPost, error) {
	if err := invalid(validation.BlogPost(*in)); err != nil {
		return nil, err
	}

	post := &domain.BlogPost{}
	applyPost(post, in)

	base := util.Slugify(in.Slug)
	if base == "" {
		base = util.Slugify(post.Title)
	}
	slug, err := uniqueSlug(ctx, s.db, &domain.BlogPost{}, base, 0)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	log.Printf("[BLOG] Create successful: id=%d, slug=%s, published=%v", post.ID, post.Slug, post.Published)
	return post, nil
}

// Update replaces a post's fields. A new slug is applied only when one is given.
func (s *BlogService) Update(ctx context.Context, id uint, in *validation.BlogPostInput) (*domain.BlogPost, error) {
	if err := invalid(validation.BlogPost(*in)); err != nil {
		return nil, err
	}

	var post domain.BlogPost
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	applyPost(&post, in)
	if requested := util.Slugify(in.Slug); requested != "" && requested != post.Slug {
		slug, err := uniqueSlug(ctx, s.db, &domain.BlogPost{}, requested, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}

	if err := s.db.WithContext(ctx).Save(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	log.Printf("[BLOG] Update successful: id=%d, published=%v", post.ID, post.Published)
	return &post, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&domain.BlogPost{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("post %d not found", id)
	}
	log.Printf("[BLOG] Delete successful: id=%d", id)
	return nil
}

func applyPost(post *domain.BlogPost, in *validation.BlogPostInput) {
	post.Title = strings.TrimSpace(in.Title)
	post.Excerpt = strings.TrimSpace(in.Excerpt)
	post.Content = in.Content
	post.Author = strings.TrimSpace(in.Author)
	post.Published = in.Published
}

// uniqueSlug appends -2, -3, ... to base until no row of model other than exceptID uses it.
func uniqueSlug(ctx context.Context, db *gorm.DB, model any, base string, exceptID uint) (string, error) {
	if base == "" {
		base = "untitled"
	}
	slug := base
	for n := 2; ; n++ {
		var count int64
		q := db.WithContext(ctx).Model(model).Where("slug = ?", slug)
		if exceptID != 0 {
			q = q.Where("id <> ?", exceptID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
