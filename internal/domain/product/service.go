// internal/domain/product/service.go
package product

import (
	"context"
)

// Service handles catalog business logic
type Service struct {
	repo Repository
}

// NewService creates a new product service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListResponse represents product response with pagination
type ListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Columns the catalog can be sorted by. Anything else falls back to id
// so user input never reaches the ORDER BY clause unchecked.
var sortableColumns = map[string]bool{
	"id":       true,
	"name":     true,
	"price":    true,
	"category": true,
}

// GetProducts retrieves products with filtering, sorting and pagination
func (s *Service) GetProducts(ctx context.Context, f *Filter) (*ListResponse, error) {
	normalizeFilter(f)

	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	pagination := Pagination{
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    f.Page < totalPages,
		HasPrev:    f.Page > 1,
	}

	return &ListResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func normalizeFilter(f *Filter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if !sortableColumns[f.SortBy] {
		f.SortBy = "id"
	}
	if f.SortOrder != "desc" {
		f.SortOrder = "asc"
	}
}
