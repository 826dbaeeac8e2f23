package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gradestock/backend/internal/domain/catalog"
	syncdomain "github.com/gradestock/backend/internal/domain/sync"
)

// workerOutcome is the terminal state a category worker reports back.
type workerOutcome int

const (
	outcomeDone workerOutcome = iota
	outcomeAborted
)

// categoryWorker crawls one category page by page, turning each hit into a
// resolved, upserted variant. Failures are contained at two scopes: a page
// fetch failure aborts this category only, an item failure skips that item
// only. The worker never lets either escape past its boundary.
type categoryWorker struct {
	category catalog.Category
	remote   syncdomain.RemoteCatalog
	resolver *IdentityResolver
	variants catalog.VariantRepository
	state    *syncdomain.RunState
	logger   *zap.Logger
}

// run drives the Paging → Processing loop until the category is exhausted
// (Done) or aborted by a page failure or cancellation. Cancellation is
// polled at the top of the page loop and the top of the item loop;
// in-flight requests are never interrupted.
func (w *categoryWorker) run(ctx context.Context) workerOutcome {
	page := 1
	for {
		if w.state.Cancelled() {
			w.state.Append(fmt.Sprintf("Category %q aborted: cancellation requested", w.category.Name))
			return outcomeAborted
		}

		result, err := w.remote.SearchCategoryPage(ctx, w.category.ID, page)
		if err != nil {
			w.state.Append(fmt.Sprintf("ERROR: category %q page %d: %v", w.category.Name, page, err))
			w.logger.Warn("Category paging aborted",
				zap.Int64("category_id", w.category.ID),
				zap.Int("page", page),
				zap.Error(err),
			)
			return outcomeAborted
		}

		if len(result.Hits) == 0 {
			return outcomeDone
		}

		for i := range result.Hits {
			if w.state.Cancelled() {
				w.state.Append(fmt.Sprintf("Category %q aborted: cancellation requested", w.category.Name))
				return outcomeAborted
			}
			w.processHit(ctx, &result.Hits[i])
		}

		w.logger.Debug("Processed category page",
			zap.Int64("category_id", w.category.ID),
			zap.Int("page", page),
			zap.Int("hits", len(result.Hits)),
			zap.Int("total_pages", result.TotalPages),
		)

		if page >= result.TotalPages {
			return outcomeDone
		}
		page++
	}
}

// processHit syncs a single search hit. Every failure is logged with the
// external id and swallowed so the worker proceeds to the next hit.
func (w *categoryWorker) processHit(ctx context.Context, hit *syncdomain.RawHit) {
	if err := w.syncHit(ctx, hit); err != nil {
		w.state.Append(fmt.Sprintf("ERROR: item %s: %v", hit.ExternalID, err))
		w.logger.Warn("Skipping item",
			zap.String("external_id", hit.ExternalID),
			zap.Error(err),
		)
	}
}

func (w *categoryWorker) syncHit(ctx context.Context, hit *syncdomain.RawHit) error {
	cleanName, grade := syncdomain.ResolveGrade(hit.HighlightedName, hit.Grades)
	if cleanName == "" {
		return fmt.Errorf("%w: no usable name in %q", syncdomain.ErrResolution, hit.HighlightedName)
	}

	w.state.SetCurrentItem(cleanName)

	detail, err := w.remote.ItemDetail(ctx, hit.ExternalID)
	if err != nil {
		return fmt.Errorf("detail fetch: %w", err)
	}
	if detail == nil {
		return fmt.Errorf("%w: empty detail payload", syncdomain.ErrRemote)
	}

	displayName := detail.Name
	if displayName == "" {
		displayName = hit.HighlightedName
	}

	masterProductID, err := w.resolver.ResolveMasterProduct(ctx, cleanName, detail.CategoryID, detail.ImageURL)
	if err != nil {
		return err
	}

	variantID, isNew, err := w.resolver.ResolveVariant(ctx, hit.ExternalID, masterProductID, displayName)
	if err != nil {
		return err
	}

	variant, err := w.variants.FindByID(ctx, variantID)
	if err != nil {
		return fmt.Errorf("%w: loading variant %s: %v", syncdomain.ErrPersistence, variantID, err)
	}

	variant.Name = displayName
	variant.CashPrice = detail.CashPrice
	variant.VoucherPrice = detail.VoucherPrice
	variant.SalePrice = detail.SalePrice
	variant.Grade = grade
	variant.ImagePath = detail.ImageURL

	if err := w.variants.Update(ctx, variant); err != nil {
		return fmt.Errorf("%w: updating variant %s: %v", syncdomain.ErrPersistence, variantID, err)
	}

	verb := "Updated"
	if isNew {
		verb = "Created"
	}
	w.state.Append(fmt.Sprintf("%s %s [%s]", verb, displayName, hit.ExternalID))
	return nil
}
