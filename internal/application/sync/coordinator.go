package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"

	"go.uber.org/zap"

	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/shared"
	syncdomain "github.com/gradestock/backend/internal/domain/sync"
)

// DefaultWorkers is the default worker pool width. It bounds concurrent
// category crawls to stay under the upstream's rate limits.
const DefaultWorkers = 5

// Config holds coordinator tuning.
type Config struct {
	// Workers is the worker pool width; DefaultWorkers when zero.
	Workers int
	// IncludeKeywords/ExcludeKeywords filter category names when targets
	// are derived from product lines or the default fallback set. Empty
	// include list admits every category.
	IncludeKeywords []string
	ExcludeKeywords []string
}

// StartResult reports whether a run or stop request was accepted.
type StartResult struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

// Coordinator owns the worker pool, the target category set of a run,
// single-flight guarding, and cooperative cancellation. At most one run is
// active process-wide; the run state's active flag is the guard.
type Coordinator struct {
	remote     syncdomain.RemoteCatalog
	categories catalog.CategoryRepository
	resolver   *IdentityResolver
	variants   catalog.VariantRepository
	state      *syncdomain.RunState
	logger     *zap.Logger
	config     Config

	// wg tracks the background run goroutine, for tests and shutdown.
	wg gosync.WaitGroup
}

// NewCoordinator creates a sync coordinator.
func NewCoordinator(
	remote syncdomain.RemoteCatalog,
	categories catalog.CategoryRepository,
	resolver *IdentityResolver,
	variants catalog.VariantRepository,
	state *syncdomain.RunState,
	logger *zap.Logger,
	config Config,
) *Coordinator {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	return &Coordinator{
		remote:     remote,
		categories: categories,
		resolver:   resolver,
		variants:   variants,
		state:      state,
		logger:     logger,
		config:     config,
	}
}

// StartRun begins a sync run over the union of the explicit categories and
// the categories of the given product lines; when both are empty the
// default fallback set is used. Rejects without touching any state while a
// run is active. The run itself proceeds in the background; observers poll
// Status.
func (c *Coordinator) StartRun(categoryIDs, productLineIDs []int64) StartResult {
	if !c.state.Begin() {
		return StartResult{Accepted: false, Message: "a sync run is already active"}
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(context.Background(), categoryIDs, productLineIDs)
	}()

	return StartResult{Accepted: true, Message: "sync run started"}
}

// Stop requests cooperative cancellation of the active run. Idempotent;
// workers observe the flag at their next page or item boundary, so a
// worker may finish its current item first.
func (c *Coordinator) Stop() StartResult {
	if !c.state.Active() {
		return StartResult{Accepted: false, Message: "no sync run is active"}
	}
	c.state.RequestCancel()
	c.state.Append("Cancellation requested")
	c.logger.Info("Sync cancellation requested")
	return StartResult{Accepted: true, Message: "cancellation requested"}
}

// Status returns an immutable snapshot of the current run state. Safe to
// call concurrently with an active run.
func (c *Coordinator) Status() syncdomain.Snapshot {
	return c.state.Snapshot()
}

// Wait blocks until the current run goroutine (if any) has finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// run executes one full sync run and always finalizes the run state.
func (c *Coordinator) run(ctx context.Context, categoryIDs, productLineIDs []int64) {
	targets, err := c.resolveTargets(ctx, categoryIDs, productLineIDs)
	if err != nil {
		// Setup failure before any worker started: run-fatal.
		c.state.Append(fmt.Sprintf("ERROR: resolving target categories: %v", err))
		c.state.Finish("Failed: could not resolve target categories")
		c.logger.Error("Sync run failed during setup", zap.Error(err))
		return
	}

	c.state.Append(fmt.Sprintf("Syncing %d categories", len(targets)))
	c.logger.Info("Sync run started",
		zap.Int("categories", len(targets)),
		zap.Int("workers", c.config.Workers),
	)

	sem := make(chan struct{}, c.config.Workers)
	var wg gosync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(category catalog.Category) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// A panicking worker must not take down its siblings.
			defer func() {
				if r := recover(); r != nil {
					c.state.Append(fmt.Sprintf("ERROR: category %q worker failed: %v", category.Name, r))
					c.logger.Error("Category worker panicked",
						zap.Int64("category_id", category.ID),
						zap.Any("panic", r),
					)
				}
			}()

			worker := &categoryWorker{
				category: category,
				remote:   c.remote,
				resolver: c.resolver,
				variants: c.variants,
				state:    c.state,
				logger:   c.logger,
			}
			if outcome := worker.run(ctx); outcome == outcomeDone {
				c.state.Append(fmt.Sprintf("Category %q done", category.Name))
			}
		}(target)
	}
	wg.Wait()

	c.state.Finish("Done")
	c.logger.Info("Sync run finished")
}

// resolveTargets builds the final category set for a run: explicit ids,
// plus the categories of each product line, plus the default fallback set
// when both inputs are empty. Product-line and fallback categories pass
// through the keyword filter; explicit ids are taken as given.
func (c *Coordinator) resolveTargets(ctx context.Context, categoryIDs, productLineIDs []int64) ([]catalog.Category, error) {
	seen := make(map[int64]bool)
	targets := make([]catalog.Category, 0)

	add := func(cat catalog.Category) {
		if !seen[cat.ID] {
			seen[cat.ID] = true
			targets = append(targets, cat)
		}
	}

	for _, id := range categoryIDs {
		cat, err := c.categories.FindByID(ctx, id)
		switch {
		case err == nil:
			add(*cat)
		case errors.Is(err, shared.ErrNotFound):
			// Unknown ids are still crawlable: the search index does not
			// require a local taxonomy row.
			add(catalog.Category{ID: id, Name: fmt.Sprintf("category %d", id)})
		default:
			return nil, fmt.Errorf("loading category %d: %w", id, err)
		}
	}

	for _, lineID := range productLineIDs {
		cats, err := c.categories.ListForProductLine(ctx, lineID)
		if err != nil {
			return nil, fmt.Errorf("listing categories for product line %d: %w", lineID, err)
		}
		for _, cat := range cats {
			if c.matchesKeywords(cat.Name) {
				add(cat)
			}
		}
	}

	if len(categoryIDs) == 0 && len(productLineIDs) == 0 {
		cats, err := c.categories.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing fallback categories: %w", err)
		}
		for _, cat := range cats {
			if cat.Active && c.matchesKeywords(cat.Name) {
				add(cat)
			}
		}
	}

	return targets, nil
}

// matchesKeywords applies the include/exclude name filter.
func (c *Coordinator) matchesKeywords(name string) bool {
	if containsAny(name, c.config.ExcludeKeywords) {
		return false
	}
	if len(c.config.IncludeKeywords) == 0 {
		return true
	}
	return containsAny(name, c.config.IncludeKeywords)
}
