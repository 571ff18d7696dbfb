// internal/domain/product/repository.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a product does not exist
var ErrNotFound = errors.New("product not found")

// Filter describes catalog list filtering and sorting
type Filter struct {
	Category  string `form:"category"`
	Fit       string `form:"fit"`
	Size      string `form:"size"`
	Color     string `form:"color"`
	Material  string `form:"material"`
	Style     string `form:"style"`
	Season    string `form:"season"`
	Gender    string `form:"gender"`
	Search    string `form:"search"`
	MinPrice  int64  `form:"min_price"`
	MaxPrice  int64  `form:"max_price"`
	InStock   *bool  `form:"in_stock"`
	SortBy    string `form:"sort_by,default=id"`
	SortOrder string `form:"sort_order,default=asc"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
}

// Repository provides read access to the product catalog
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, f *Filter) ([]Product, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed product repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*Product, error) {
	var prod Product
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, pkgerrors.Wrap(result.Error, "failed to retrieve product")
	}
	return &prod, nil
}

func (r *gormRepository) List(ctx context.Context, f *Filter) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{})

	for column, value := range map[string]string{
		"category": f.Category,
		"fit":      f.Fit,
		"size":     f.Size,
		"color":    f.Color,
		"material": f.Material,
		"style":    f.Style,
		"season":   f.Season,
		"gender":   f.Gender,
	} {
		if value != "" {
			query = query.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}

	if f.Search != "" {
		search := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	if f.MinPrice > 0 {
		query = query.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}
	if f.InStock != nil {
		query = query.Where("in_stock = ?", *f.InStock)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "failed to count products")
	}

	query = query.Order(fmt.Sprintf("%s %s", f.SortBy, f.SortOrder))

	offset := (f.Page - 1) * f.Limit
	if err := query.Offset(offset).Limit(f.Limit).Find(&products).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "failed to retrieve products")
	}

	return products, total, nil
}
