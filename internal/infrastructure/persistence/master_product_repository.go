package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMasterProductRepository implements MasterProductRepository using GORM
type GormMasterProductRepository struct {
	db *gorm.DB
}

// NewGormMasterProductRepository creates a new GormMasterProductRepository
func NewGormMasterProductRepository(db *gorm.DB) *GormMasterProductRepository {
	return &GormMasterProductRepository{db: db}
}

// FindByName finds a master product by its exact normalized name
func (r *GormMasterProductRepository) FindByName(ctx context.Context, name string) (*catalog.MasterProduct, error) {
	var product catalog.MasterProduct
	if err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByID finds a master product by its ID, variants included
func (r *GormMasterProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterProduct, error) {
	var product catalog.MasterProduct
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create inserts a new master product
func (r *GormMasterProductRepository) Create(ctx context.Context, product *catalog.MasterProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// List returns a page of master products with their variants, optionally
// filtered by a case-insensitive name substring, plus the unpaged total.
func (r *GormMasterProductRepository) List(ctx context.Context, nameFilter string, offset, limit int) ([]catalog.MasterProduct, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.MasterProduct{})
	if nameFilter != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+nameFilter+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []catalog.MasterProduct
	if err := query.
		Preload("Variants").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
