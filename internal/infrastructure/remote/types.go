package remote

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// Search endpoint wire types
// ---------------------------------------------------------------------------

// searchRequest is the body of the hosted search multi-query endpoint.
type searchRequest struct {
	Requests []searchQuery `json:"requests"`
}

// searchQuery addresses one index with URL-encoded query parameters.
type searchQuery struct {
	IndexName string `json:"indexName"`
	Params    string `json:"params"`
}

// searchResponse is the multi-query response envelope.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

// searchResult is one index's result set.
type searchResult struct {
	Hits    []searchHit `json:"hits"`
	Page    int         `json:"page"`
	NbPages int         `json:"nbPages"`
}

// searchHit is one item row in the search index.
type searchHit struct {
	ObjectID        string          `json:"objectID"`
	BoxName         string          `json:"boxName"`
	Grade           []string        `json:"Grade"`
	ImageURLs       *imageURLSet    `json:"imageUrls"`
	HighlightResult highlightResult `json:"_highlightResult"`
}

// highlightResult carries the highlighted display name. The search index
// wraps matched terms in markup; with an empty query the value is the
// plain name.
type highlightResult struct {
	BoxName *highlightValue `json:"boxName"`
}

type highlightValue struct {
	Value string `json:"value"`
}

// displayName prefers the highlighted name, falling back to the raw one.
func (h *searchHit) displayName() string {
	if h.HighlightResult.BoxName != nil && h.HighlightResult.BoxName.Value != "" {
		return h.HighlightResult.BoxName.Value
	}
	return h.BoxName
}

// imageURLSet is the upstream's sized image reference set.
type imageURLSet struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
	Small  string `json:"small"`
}

// medium returns the preferred thumbnail size, falling back through the set.
func (s *imageURLSet) medium() string {
	if s == nil {
		return ""
	}
	if s.Medium != "" {
		return s.Medium
	}
	if s.Small != "" {
		return s.Small
	}
	return s.Large
}

// ---------------------------------------------------------------------------
// Versioned API wire types (taxonomy + item detail)
// ---------------------------------------------------------------------------

// apiEnvelope is the versioned API's response wrapper.
type apiEnvelope struct {
	Response *apiResponse `json:"response"`
}

type apiResponse struct {
	Data *apiData `json:"data"`
}

// apiData carries whichever payload the endpoint returns; absent keys
// decode to nil, which the client treats as an empty result.
type apiData struct {
	SuperCats    []superCatRow    `json:"superCats"`
	ProductLines []productLineRow `json:"productLines"`
	Categories   []categoryRow    `json:"categories"`
	BoxDetails   []boxDetailRow   `json:"boxDetails"`
}

type superCatRow struct {
	SuperCatID           int64  `json:"superCatId"`
	SuperCatFriendlyName string `json:"superCatFriendlyName"`
}

type productLineRow struct {
	ProductLineID   int64  `json:"productLineId"`
	ProductLineName string `json:"productLineName"`
	SuperCatID      int64  `json:"superCatId"`
}

type categoryRow struct {
	CategoryID           int64  `json:"categoryId"`
	CategoryFriendlyName string `json:"categoryFriendlyName"`
	ProductLineID        int64  `json:"productLineId"`
}

// boxDetailRow is the full attribute set of one item.
type boxDetailRow struct {
	BoxName       string           `json:"boxName"`
	CashPrice     *decimal.Decimal `json:"cashPrice"`
	ExchangePrice *decimal.Decimal `json:"exchangePrice"`
	SellPrice     *decimal.Decimal `json:"sellPrice"`
	CategoryID    int64            `json:"categoryId"`
	ImageURLs     *imageURLSet     `json:"imageUrls"`
}
