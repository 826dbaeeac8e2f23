package sync

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gradestock/backend/internal/domain/catalog"
)

// RawHit is one search result from the remote catalog's paginated
// per-category search. Fields are decoded once at the client boundary;
// everything downstream operates on this typed form.
type RawHit struct {
	// ExternalID is the remote catalog's unique id for the item.
	ExternalID string
	// HighlightedName is the display name as returned by the search index.
	// It may carry a trailing grade suffix (", B", " A", "/C", "-F").
	HighlightedName string
	// Grades is the remote's explicit grade field. Usually empty; when
	// present, its first element wins over suffix parsing.
	Grades []string
	// ImageURL is the thumbnail reference for the hit.
	ImageURL string
}

// PageResult is one page of category search results.
type PageResult struct {
	Hits       []RawHit
	Page       int
	TotalPages int
}

// ItemDetail is the full attribute set for one item, fetched per external id.
type ItemDetail struct {
	Name         string
	CashPrice    decimal.NullDecimal
	VoucherPrice decimal.NullDecimal
	SalePrice    decimal.NullDecimal
	CategoryID   int64
	ImageURL     string
}

// RemoteCatalog is the read interface over the third-party catalog.
// Implementations map requests and responses only; they hold no state and
// never retry. Retry policy belongs to the caller.
type RemoteCatalog interface {
	// SearchCategoryPage fetches one page of a category's items.
	// Fails with ErrTransport or ErrRemote wraps.
	SearchCategoryPage(ctx context.Context, categoryID int64, page int) (*PageResult, error)
	// ItemDetail fetches full attributes for an external id. A well-formed
	// but empty upstream payload yields (nil, nil), not an error.
	ItemDetail(ctx context.Context, externalID string) (*ItemDetail, error)

	// Taxonomy reads, used by the taxonomy refresh.
	SuperCats(ctx context.Context) ([]catalog.SuperCat, error)
	ProductLines(ctx context.Context) ([]catalog.ProductLine, error)
	Categories(ctx context.Context, productLineID int64) ([]catalog.Category, error)
}
