package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gradestock/backend/internal/domain/catalog"
	syncdomain "github.com/gradestock/backend/internal/domain/sync"
)

// TaxonomyRefresher mirrors the remote taxonomy (super categories, product
// lines, categories) into the local store. Unlike the item sync it is a
// small synchronous upsert pass; any failure aborts the refresh.
type TaxonomyRefresher struct {
	remote     syncdomain.RemoteCatalog
	categories catalog.CategoryRepository
	logger     *zap.Logger
}

// NewTaxonomyRefresher creates a taxonomy refresher.
func NewTaxonomyRefresher(remote syncdomain.RemoteCatalog, categories catalog.CategoryRepository, logger *zap.Logger) *TaxonomyRefresher {
	return &TaxonomyRefresher{
		remote:     remote,
		categories: categories,
		logger:     logger,
	}
}

// Refresh upserts the full remote taxonomy, level by level.
func (t *TaxonomyRefresher) Refresh(ctx context.Context) error {
	superCats, err := t.remote.SuperCats(ctx)
	if err != nil {
		return fmt.Errorf("fetching super categories: %w", err)
	}
	if err := t.categories.UpsertSuperCats(ctx, superCats); err != nil {
		return fmt.Errorf("storing super categories: %w", err)
	}

	lines, err := t.remote.ProductLines(ctx)
	if err != nil {
		return fmt.Errorf("fetching product lines: %w", err)
	}
	if err := t.categories.UpsertProductLines(ctx, lines); err != nil {
		return fmt.Errorf("storing product lines: %w", err)
	}

	total := 0
	for _, line := range lines {
		cats, err := t.remote.Categories(ctx, line.ID)
		if err != nil {
			return fmt.Errorf("fetching categories for product line %d: %w", line.ID, err)
		}
		if err := t.categories.UpsertCategories(ctx, cats); err != nil {
			return fmt.Errorf("storing categories for product line %d: %w", line.ID, err)
		}
		total += len(cats)
	}

	t.logger.Info("Taxonomy refreshed",
		zap.Int("super_cats", len(superCats)),
		zap.Int("product_lines", len(lines)),
		zap.Int("categories", total),
	)
	return nil
}
