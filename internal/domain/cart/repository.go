// internal/domain/cart/repository.go
package cart

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLineNotFound is returned when a cart line does not exist
var ErrLineNotFound = errors.New("cart line not found")

// Repository persists cart lines. All queries are scoped by the caller;
// nothing here crosses owner boundaries on its own.
type Repository interface {
	// AddOrIncrement atomically creates the (ownerKey, productID) line with
	// quantity 1 or bumps an existing line's quantity by 1.
	AddOrIncrement(ctx context.Context, ownerKey string, productID uint) error
	FindByID(ctx context.Context, id uint) (*CartLine, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, ownerKey string) error
	ListByOwner(ctx context.Context, ownerKey string) ([]CartLine, error)
	SumQuantities(ctx context.Context, ownerKey string) (int, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a GORM-backed cart repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) AddOrIncrement(ctx context.Context, ownerKey string, productID uint) error {
	line := CartLine{
		OwnerKey:  ownerKey,
		ProductID: productID,
		Quantity:  1,
	}

	// Single-statement upsert against the composite unique index, so the
	// read-check-then-write race from concurrent adds cannot produce two rows.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_key"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_lines.quantity + 1"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&line).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to upsert cart line")
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*CartLine, error) {
	var line CartLine
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&line)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, pkgerrors.Wrap(result.Error, "failed to retrieve cart line")
	}
	return &line, nil
}

func (r *gormRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	result := r.db.WithContext(ctx).Model(&CartLine{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to update cart line")
	}
	if result.RowsAffected == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CartLine{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete cart line")
	}
	if result.RowsAffected == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *gormRepository) DeleteByOwner(ctx context.Context, ownerKey string) error {
	err := r.db.WithContext(ctx).Where("owner_key = ?", ownerKey).Delete(&CartLine{}).Error
	if err != nil {
		return pkgerrors.Wrap(err, "failed to clear cart")
	}
	return nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, ownerKey string) ([]CartLine, error) {
	var lines []CartLine
	err := r.db.WithContext(ctx).
		Where("owner_key = ?", ownerKey).
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list cart lines")
	}
	return lines, nil
}

func (r *gormRepository) SumQuantities(ctx context.Context, ownerKey string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&CartLine{}).
		Where("owner_key = ?", ownerKey).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, pkgerrors.Wrap(err, "failed to sum cart quantities")
	}
	return int(total), nil
}
