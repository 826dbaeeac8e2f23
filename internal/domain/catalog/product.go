package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasterProduct is the canonical grouping of variants that share a
// normalized display name. It is created lazily the first time a remote
// item resolves to a name we have not seen before.
//
// CategoryID and ImagePath are fixed at creation: later syncs never
// overwrite them, even if the remote moves the item to another category.
type MasterProduct struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name       string           `gorm:"type:varchar(512);not null;uniqueIndex"`
	CategoryID int64            `gorm:"not null;index"`
	ImagePath  string           `gorm:"type:varchar(2048)"`
	Variants   []ProductVariant `gorm:"foreignKey:MasterProductID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (MasterProduct) TableName() string {
	return "master_products"
}

// NewMasterProduct creates a master product for a normalized name.
func NewMasterProduct(name string, categoryID int64, imagePath string) (*MasterProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProductName
	}

	return &MasterProduct{
		ID:         uuid.New(),
		Name:       name,
		CategoryID: categoryID,
		ImagePath:  imagePath,
	}, nil
}

// ProductVariant is one purchasable instance of a master product, one per
// remote external id. Price fields, grade, image, and display name are
// overwritten on every successful sync of the backing item.
type ProductVariant struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name            string              `gorm:"type:varchar(512);not null;index"`
	MasterProductID uuid.UUID           `gorm:"type:uuid;not null;index"`
	CashPrice       decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	VoucherPrice    decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	SalePrice       decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Grade           string              `gorm:"type:varchar(10)"`
	ImagePath       string              `gorm:"type:varchar(2048)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates an empty variant under a master product.
// Prices and grade are filled in by the first sync update.
func NewProductVariant(masterProductID uuid.UUID, name string) (*ProductVariant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if masterProductID == uuid.Nil {
		return nil, ErrInvalidMasterProductID
	}

	return &ProductVariant{
		ID:              uuid.New(),
		Name:            name,
		MasterProductID: masterProductID,
	}, nil
}

// Rebind moves the variant under a different master product. Used when the
// remote renames an item so its clean name resolves to another group.
func (v *ProductVariant) Rebind(masterProductID uuid.UUID) error {
	if masterProductID == uuid.Nil {
		return ErrInvalidMasterProductID
	}
	v.MasterProductID = masterProductID
	return nil
}

// ExternalMapping links a remote catalog item's external id to exactly one
// local variant. The sync engine never deletes mappings; repeated syncs of
// the same external id update the variant the mapping points to.
type ExternalMapping struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExternalID string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	VariantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (ExternalMapping) TableName() string {
	return "external_mappings"
}

// NewExternalMapping creates a mapping from an external id to a variant.
func NewExternalMapping(externalID string, variantID uuid.UUID) (*ExternalMapping, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, ErrEmptyExternalID
	}
	if variantID == uuid.Nil {
		return nil, ErrInvalidVariantID
	}

	return &ExternalMapping{
		ID:         uuid.New(),
		ExternalID: externalID,
		VariantID:  variantID,
	}, nil
}
