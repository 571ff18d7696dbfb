// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"

	"github.com/your-org/viber-store/internal/domain/product"
)

// ErrNotOwner is returned when a caller touches a line it does not own
var ErrNotOwner = errors.New("cart line belongs to another owner")

// ProductFinder is the slice of the catalog the cart needs: existence
// checks on add, details on list.
type ProductFinder interface {
	FindByID(ctx context.Context, id uint) (*product.Product, error)
}

// Service handles cart business logic. Every operation is scoped to an
// owner key; lines owned by other keys are invisible to it.
type Service struct {
	lines    Repository
	products ProductFinder
}

// NewService creates a new cart service
func NewService(lines Repository, products ProductFinder) *Service {
	return &Service{
		lines:    lines,
		products: products,
	}
}

// SetQuantityOutcome distinguishes an update from a removal-via-zero
type SetQuantityOutcome string

const (
	LineUpdated SetQuantityOutcome = "updated"
	LineRemoved SetQuantityOutcome = "removed"
)

// LineResponse represents a cart line joined with product details
type LineResponse struct {
	ID       uint             `json:"id"`
	Quantity int              `json:"quantity"`
	Product  *product.Product `json:"product"`
	Total    int64            `json:"total"` // quantity * price, in cents
}

// CartResponse represents a cart with lines and totals
type CartResponse struct {
	OwnerKey string         `json:"owner_key"`
	Items    []LineResponse `json:"items"`
	Totals   Totals         `json:"totals"`
}

// Add puts one unit of the product into the owner's cart, creating the
// line or bumping its quantity, and returns the owner's new total item
// count (sum of quantities, not line count).
func (s *Service) Add(ctx context.Context, ownerKey string, productID uint) (int, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return 0, err
	}

	if err := s.lines.AddOrIncrement(ctx, ownerKey, productID); err != nil {
		return 0, err
	}

	return s.lines.SumQuantities(ctx, ownerKey)
}

// SetQuantity updates a line's quantity, deleting the line when the new
// quantity is zero or below. Removal via zero is a normal outcome, not an
// error.
func (s *Service) SetQuantity(ctx context.Context, ownerKey string, lineID uint, quantity int) (SetQuantityOutcome, error) {
	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		return "", err
	}
	if line.OwnerKey != ownerKey {
		return "", ErrNotOwner
	}

	if quantity > 0 {
		if err := s.lines.UpdateQuantity(ctx, lineID, quantity); err != nil {
			return "", err
		}
		return LineUpdated, nil
	}

	if err := s.lines.Delete(ctx, lineID); err != nil {
		return "", err
	}
	return LineRemoved, nil
}

// Remove deletes a line from the owner's cart
func (s *Service) Remove(ctx context.Context, ownerKey string, lineID uint) error {
	line, err := s.lines.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line.OwnerKey != ownerKey {
		return ErrNotOwner
	}

	return s.lines.Delete(ctx, lineID)
}

// GetCart returns all of the owner's lines joined with product details,
// in insertion order, plus totals.
func (s *Service) GetCart(ctx context.Context, ownerKey string) (*CartResponse, error) {
	lines, err := s.lines.ListByOwner(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	items := make([]LineResponse, 0, len(lines))
	var totals Totals

	for _, line := range lines {
		prod, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				// Product removed from the catalog after it was carted.
				continue
			}
			return nil, err
		}

		lineTotal := prod.Price * int64(line.Quantity)
		items = append(items, LineResponse{
			ID:       line.ID,
			Quantity: line.Quantity,
			Product:  prod,
			Total:    lineTotal,
		})

		totals.ItemCount++
		totals.TotalQuantity += line.Quantity
		totals.SubTotal += lineTotal
	}

	return &CartResponse{
		OwnerKey: ownerKey,
		Items:    items,
		Totals:   totals,
	}, nil
}

// TotalValue returns the cart's value in cents. Prices are integer cents
// throughout, so the sum is exact regardless of cart size.
func (s *Service) TotalValue(ctx context.Context, ownerKey string) (int64, error) {
	response, err := s.GetCart(ctx, ownerKey)
	if err != nil {
		return 0, err
	}
	return response.Totals.SubTotal, nil
}

// Count returns the sum of quantities across the owner's lines. A cart
// holding one line of quantity 5 counts as 5.
func (s *Service) Count(ctx context.Context, ownerKey string) (int, error) {
	return s.lines.SumQuantities(ctx, ownerKey)
}

// Clear removes every line for the owner. Clearing an empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, ownerKey string) error {
	return s.lines.DeleteByOwner(ctx, ownerKey)
}
