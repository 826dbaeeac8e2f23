package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/domain/sync"
)

// maxResponseSize is the maximum allowed response size from the remote
// catalog (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Client implements sync.RemoteCatalog against the third-party catalog:
// a hosted search index for per-category pages and a versioned API for
// taxonomy and per-item detail. It holds no state beyond configuration and
// never retries; retry policy belongs to the caller.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a remote catalog client with the given configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// SearchCategoryPage fetches one page of a category's sellable items from
// the search index.
func (c *Client) SearchCategoryPage(ctx context.Context, categoryID int64, page int) (*sync.PageResult, error) {
	params := url.Values{}
	params.Set("filters", fmt.Sprintf("boxVisibilityOnWeb=1 AND boxSaleAllowed=1 AND categoryId:%d", categoryID))
	params.Set("hitsPerPage", strconv.Itoa(c.config.HitsPerPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("query", "")

	body, err := json.Marshal(searchRequest{
		Requests: []searchQuery{{
			IndexName: c.config.SearchIndex,
			Params:    params.Encode(),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding search request: %v", sync.ErrRemote, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.SearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building search request: %v", sync.ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Algolia-API-Key", c.config.SearchAPIKey)
	req.Header.Set("X-Algolia-Application-Id", c.config.SearchAppID)

	var decoded searchResponse
	if err := c.do(req, &decoded); err != nil {
		return nil, err
	}

	if len(decoded.Results) == 0 {
		return &sync.PageResult{Page: page, TotalPages: page}, nil
	}

	result := decoded.Results[0]
	hits := make([]sync.RawHit, 0, len(result.Hits))
	for i := range result.Hits {
		hit := &result.Hits[i]
		hits = append(hits, sync.RawHit{
			ExternalID:      hit.ObjectID,
			HighlightedName: hit.displayName(),
			Grades:          hit.Grade,
			ImageURL:        hit.ImageURLs.medium(),
		})
	}

	return &sync.PageResult{
		Hits:       hits,
		Page:       result.Page,
		TotalPages: result.NbPages,
	}, nil
}

// ItemDetail fetches the full attribute set for an external id. A
// well-formed but empty payload yields (nil, nil).
func (c *Client) ItemDetail(ctx context.Context, externalID string) (*sync.ItemDetail, error) {
	data, err := c.getAPI(ctx, "/boxes/"+url.PathEscape(externalID)+"/detail")
	if err != nil {
		return nil, err
	}
	if data == nil || len(data.BoxDetails) == 0 {
		return nil, nil
	}

	detail := data.BoxDetails[0]
	return &sync.ItemDetail{
		Name:         detail.BoxName,
		CashPrice:    nullDecimal(detail.CashPrice),
		VoucherPrice: nullDecimal(detail.ExchangePrice),
		SalePrice:    nullDecimal(detail.SellPrice),
		CategoryID:   detail.CategoryID,
		ImageURL:     detail.ImageURLs.medium(),
	}, nil
}

// SuperCats fetches the top taxonomy level.
func (c *Client) SuperCats(ctx context.Context) ([]catalog.SuperCat, error) {
	data, err := c.getAPI(ctx, "/supercats")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	cats := make([]catalog.SuperCat, 0, len(data.SuperCats))
	for _, row := range data.SuperCats {
		cats = append(cats, catalog.SuperCat{
			ID:   row.SuperCatID,
			Name: row.SuperCatFriendlyName,
		})
	}
	return cats, nil
}

// ProductLines fetches all product lines.
func (c *Client) ProductLines(ctx context.Context) ([]catalog.ProductLine, error) {
	data, err := c.getAPI(ctx, "/productlines")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	lines := make([]catalog.ProductLine, 0, len(data.ProductLines))
	for _, row := range data.ProductLines {
		lines = append(lines, catalog.ProductLine{
			ID:         row.ProductLineID,
			Name:       row.ProductLineName,
			SuperCatID: row.SuperCatID,
		})
	}
	return lines, nil
}

// Categories fetches the categories of one product line.
func (c *Client) Categories(ctx context.Context, productLineID int64) ([]catalog.Category, error) {
	path := "/categories?productLineIds=" + url.QueryEscape(fmt.Sprintf("[%d]", productLineID))
	data, err := c.getAPI(ctx, path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	categories := make([]catalog.Category, 0, len(data.Categories))
	for _, row := range data.Categories {
		categories = append(categories, catalog.Category{
			ID:            row.CategoryID,
			Name:          row.CategoryFriendlyName,
			ProductLineID: row.ProductLineID,
			Active:        true,
		})
	}
	return categories, nil
}

// getAPI performs a GET against the versioned API and unwraps the response
// envelope. A present envelope with no data is returned as nil, nil.
func (c *Client) getAPI(ctx context.Context, path string) (*apiData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIBaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", sync.ErrRemote, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	var envelope apiEnvelope
	if err := c.do(req, &envelope); err != nil {
		return nil, err
	}

	if envelope.Response == nil || envelope.Response.Data == nil {
		return nil, nil
	}
	return envelope.Response.Data, nil
}

// do executes the request and decodes the JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sync.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %d from %s", sync.ErrRemote, resp.StatusCode, req.URL.Path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", sync.ErrTransport, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", sync.ErrRemote, err)
	}
	return nil
}

// nullDecimal converts an optional wire decimal to a NullDecimal.
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// Ensure Client implements the domain interface
var _ sync.RemoteCatalog = (*Client)(nil)
