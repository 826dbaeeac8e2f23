package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMappingRepository implements MappingRepository using GORM
type GormMappingRepository struct {
	db *gorm.DB
}

// NewGormMappingRepository creates a new GormMappingRepository
func NewGormMappingRepository(db *gorm.DB) *GormMappingRepository {
	return &GormMappingRepository{db: db}
}

// FindByExternalID finds a mapping by the remote item id, along with the
// master product the mapped variant currently belongs to.
func (r *GormMappingRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.ExternalMapping, uuid.UUID, error) {
	var row struct {
		catalog.ExternalMapping
		MasterProductID uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&catalog.ExternalMapping{}).
		Select("external_mappings.*, product_variants.master_product_id").
		Joins("JOIN product_variants ON product_variants.id = external_mappings.variant_id").
		Where("external_mappings.external_id = ?", externalID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, shared.ErrNotFound
		}
		return nil, uuid.Nil, err
	}
	return &row.ExternalMapping, row.MasterProductID, nil
}

// Create inserts a new mapping
func (r *GormMappingRepository) Create(ctx context.Context, mapping *catalog.ExternalMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

// Count returns the total number of mappings
func (r *GormMappingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.ExternalMapping{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
