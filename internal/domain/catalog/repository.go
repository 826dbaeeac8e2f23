package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository persists the remote taxonomy and answers the target
// category lookups the sync coordinator needs.
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	// ListForProductLine returns all categories under a product line.
	ListForProductLine(ctx context.Context, productLineID int64) ([]Category, error)
	// UpsertCategories writes taxonomy rows keyed by remote id.
	UpsertCategories(ctx context.Context, categories []Category) error
	UpsertProductLines(ctx context.Context, lines []ProductLine) error
	UpsertSuperCats(ctx context.Context, cats []SuperCat) error
	ListProductLineIDs(ctx context.Context) ([]int64, error)
}

// MasterProductRepository persists canonical products keyed by normalized name.
type MasterProductRepository interface {
	// FindByName looks up a master product by its exact normalized name.
	// Returns shared.ErrNotFound when no such product exists.
	FindByName(ctx context.Context, name string) (*MasterProduct, error)
	FindByID(ctx context.Context, id uuid.UUID) (*MasterProduct, error)
	Create(ctx context.Context, product *MasterProduct) error
	// List returns master products with their variants preloaded,
	// optionally filtered by a name substring.
	List(ctx context.Context, nameFilter string, offset, limit int) ([]MasterProduct, int64, error)
}

// VariantRepository persists product variants.
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	Create(ctx context.Context, variant *ProductVariant) error
	// Update overwrites the variant's mutable fields (name, prices, grade,
	// image, master product binding).
	Update(ctx context.Context, variant *ProductVariant) error
	ListByMasterProduct(ctx context.Context, masterProductID uuid.UUID) ([]ProductVariant, error)
}

// MappingRepository persists external-id → variant links.
type MappingRepository interface {
	// FindByExternalID returns the mapping together with the mapped
	// variant's current master product id. Returns shared.ErrNotFound when
	// the external id is unknown.
	FindByExternalID(ctx context.Context, externalID string) (*ExternalMapping, uuid.UUID, error)
	Create(ctx context.Context, mapping *ExternalMapping) error
	Count(ctx context.Context) (int64, error)
}
