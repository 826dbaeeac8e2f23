package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// Create inserts a new variant
func (r *GormVariantRepository) Create(ctx context.Context, variant *catalog.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

// Update saves all fields of an existing variant
func (r *GormVariantRepository) Update(ctx context.Context, variant *catalog.ProductVariant) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.ProductVariant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]interface{}{
			"name":              variant.Name,
			"master_product_id": variant.MasterProductID,
			"cash_price":        variant.CashPrice,
			"voucher_price":     variant.VoucherPrice,
			"sale_price":        variant.SalePrice,
			"grade":             variant.Grade,
			"image_path":        variant.ImagePath,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByMasterProduct returns all variants of a master product
func (r *GormVariantRepository) ListByMasterProduct(ctx context.Context, masterProductID uuid.UUID) ([]catalog.ProductVariant, error) {
	var variants []catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("master_product_id = ?", masterProductID).
		Order("name ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}
