package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/shared"
	syncdomain "github.com/gradestock/backend/internal/domain/sync"
)

// IdentityResolver maps remote items onto local canonical identities:
// normalized name → master product, external id → variant.
type IdentityResolver struct {
	masterProducts catalog.MasterProductRepository
	variants       catalog.VariantRepository
	mappings       catalog.MappingRepository
}

// NewIdentityResolver creates an identity resolver over the given repositories.
func NewIdentityResolver(
	masterProducts catalog.MasterProductRepository,
	variants catalog.VariantRepository,
	mappings catalog.MappingRepository,
) *IdentityResolver {
	return &IdentityResolver{
		masterProducts: masterProducts,
		variants:       variants,
		mappings:       mappings,
	}
}

// ResolveMasterProduct looks a master product up by its normalized name,
// creating one lazily when absent. The category and image of an existing
// master product are left untouched: identity attributes are fixed at
// first sight, unlike variant fields which follow every sync.
func (r *IdentityResolver) ResolveMasterProduct(ctx context.Context, cleanName string, categoryID int64, imagePath string) (uuid.UUID, error) {
	existing, err := r.masterProducts.FindByName(ctx, cleanName)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%w: looking up master product %q: %v", syncdomain.ErrPersistence, cleanName, err)
	}

	product, err := catalog.NewMasterProduct(cleanName, categoryID, imagePath)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", syncdomain.ErrResolution, err)
	}
	if err := r.masterProducts.Create(ctx, product); err != nil {
		return uuid.Nil, fmt.Errorf("%w: creating master product %q: %v", syncdomain.ErrPersistence, cleanName, err)
	}
	return product.ID, nil
}

// ResolveVariant finds the variant mapped to an external id, creating the
// variant and its mapping when the id is new. Returns the variant id and
// whether it was created by this call.
//
// When an existing mapping's variant is bound to a different master
// product than the current resolution (the remote renamed the item across
// group boundaries), the variant is rebound to the new master product.
// The previous master product is left as is, even if orphaned.
func (r *IdentityResolver) ResolveVariant(ctx context.Context, externalID string, masterProductID uuid.UUID, displayName string) (uuid.UUID, bool, error) {
	mapping, mappedMasterID, err := r.mappings.FindByExternalID(ctx, externalID)
	if err == nil {
		if mappedMasterID != masterProductID {
			if err := r.rebindVariant(ctx, mapping.VariantID, masterProductID); err != nil {
				return uuid.Nil, false, err
			}
		}
		return mapping.VariantID, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, false, fmt.Errorf("%w: looking up mapping %s: %v", syncdomain.ErrPersistence, externalID, err)
	}

	variant, err := catalog.NewProductVariant(masterProductID, displayName)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: %v", syncdomain.ErrResolution, err)
	}
	if err := r.variants.Create(ctx, variant); err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: creating variant for %s: %v", syncdomain.ErrPersistence, externalID, err)
	}

	newMapping, err := catalog.NewExternalMapping(externalID, variant.ID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: %v", syncdomain.ErrResolution, err)
	}
	if err := r.mappings.Create(ctx, newMapping); err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: creating mapping for %s: %v", syncdomain.ErrPersistence, externalID, err)
	}

	return variant.ID, true, nil
}

func (r *IdentityResolver) rebindVariant(ctx context.Context, variantID, masterProductID uuid.UUID) error {
	variant, err := r.variants.FindByID(ctx, variantID)
	if err != nil {
		return fmt.Errorf("%w: loading variant %s: %v", syncdomain.ErrPersistence, variantID, err)
	}
	if err := variant.Rebind(masterProductID); err != nil {
		return fmt.Errorf("%w: %v", syncdomain.ErrResolution, err)
	}
	if err := r.variants.Update(ctx, variant); err != nil {
		return fmt.Errorf("%w: rebinding variant %s: %v", syncdomain.ErrPersistence, variantID, err)
	}
	return nil
}
