package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradestock/backend/internal/domain/sync"
)

func testConfig(apiURL, searchURL string) *Config {
	cfg := DefaultConfig()
	cfg.APIBaseURL = apiURL
	cfg.SearchURL = searchURL
	cfg.SearchIndex = "test_index"
	cfg.SearchAppID = "APP"
	cfg.SearchAPIKey = "KEY"
	return cfg
}

func TestClient_SearchCategoryPage(t *testing.T) {
	var gotBody searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "KEY", r.Header.Get("X-Algolia-API-Key"))
		assert.Equal(t, "APP", r.Header.Get("X-Algolia-Application-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{
			"results": [{
				"page": 1,
				"nbPages": 3,
				"hits": [
					{
						"objectID": "B123",
						"boxName": "iPhone 12 64GB, B",
						"_highlightResult": {"boxName": {"value": "iPhone 12 64GB, B"}},
						"Grade": [],
						"imageUrls": {"medium": "https://img/123-m.jpg"}
					},
					{
						"objectID": "B124",
						"boxName": "iPhone 12 64GB A",
						"Grade": ["A"]
					}
				]
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, server.URL+"/1/indexes/*/queries"))
	require.NoError(t, err)

	page, err := client.SearchCategoryPage(context.Background(), 960, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Hits, 2)
	assert.Equal(t, "B123", page.Hits[0].ExternalID)
	assert.Equal(t, "iPhone 12 64GB, B", page.Hits[0].HighlightedName)
	assert.Equal(t, "https://img/123-m.jpg", page.Hits[0].ImageURL)
	assert.Empty(t, page.Hits[0].Grades)
	assert.Equal(t, []string{"A"}, page.Hits[1].Grades)
	assert.Equal(t, "iPhone 12 64GB A", page.Hits[1].HighlightedName, "falls back to raw name without highlight")

	// Request carries the category filter and page number.
	require.Len(t, gotBody.Requests, 1)
	assert.Equal(t, "test_index", gotBody.Requests[0].IndexName)
	params, err := url.ParseQuery(gotBody.Requests[0].Params)
	require.NoError(t, err)
	assert.Equal(t, "boxVisibilityOnWeb=1 AND boxSaleAllowed=1 AND categoryId:960", params.Get("filters"))
	assert.Equal(t, "1", params.Get("page"))
	assert.Equal(t, "100", params.Get("hitsPerPage"))
}

func TestClient_SearchCategoryPage_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, server.URL))
	require.NoError(t, err)

	page, err := client.SearchCategoryPage(context.Background(), 960, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Hits)
	assert.GreaterOrEqual(t, page.Page, page.TotalPages, "empty result terminates pagination")
}

func TestClient_SearchCategoryPage_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, server.URL))
	require.NoError(t, err)

	_, err = client.SearchCategoryPage(context.Background(), 960, 1)
	assert.ErrorIs(t, err, sync.ErrRemote)
}

func TestClient_SearchCategoryPage_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, server.URL))
	require.NoError(t, err)

	_, err = client.SearchCategoryPage(context.Background(), 960, 1)
	assert.ErrorIs(t, err, sync.ErrRemote)
}

func TestClient_SearchCategoryPage_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client, err := NewClient(testConfig(server.URL, server.URL))
	require.NoError(t, err)

	_, err = client.SearchCategoryPage(context.Background(), 960, 1)
	assert.ErrorIs(t, err, sync.ErrTransport)
}

func TestClient_ItemDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boxes/B123/detail", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"response": {"data": {"boxDetails": [{
				"boxName": "iPhone 12 64GB, B",
				"cashPrice": 180.00,
				"exchangePrice": 220.50,
				"sellPrice": 255,
				"categoryId": 960,
				"imageUrls": {"medium": "https://img/123-m.jpg", "large": "https://img/123-l.jpg"}
			}]}}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, server.URL))
	require.NoError(t, err)

	detail, err := client.ItemDetail(context.Background(), "B123")
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "iPhone 12 64GB, B", detail.Name)
	require.True(t, detail.CashPrice.Valid)
	assert.Equal(t, "180", detail.CashPrice.Decimal.String())
	require.True(t, detail.VoucherPrice.Valid)
	assert.Equal(t, "220.5", detail.VoucherPrice.Decimal.String())
	require.True(t, detail.SalePrice.Valid)
	assert.Equal(t, "255", detail.SalePrice.Decimal.String())
	assert.Equal(t, int64(960), detail.CategoryID)
	assert.Equal(t, "https://img/123-m.jpg", detail.ImageURL)
}

func TestClient_ItemDetail_EmptyPayloadIsNotAnError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null data", `{"response": {"data": null}}`},
		{"empty boxDetails", `{"response": {"data": {"boxDetails": []}}}`},
		{"null response", `{"response": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(testConfig(server.URL, server.URL))
			require.NoError(t, err)

			detail, err := client.ItemDetail(context.Background(), "B404")
			require.NoError(t, err)
			assert.Nil(t, detail)
		})
	}
}

func TestClient_Taxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/supercats":
			_, _ = w.Write([]byte(`{"response": {"data": {"superCats": [
				{"superCatId": 1, "superCatFriendlyName": "Computing"}
			]}}}`))
		case "/productlines":
			_, _ = w.Write([]byte(`{"response": {"data": {"productLines": [
				{"productLineId": 106, "productLineName": "Phones", "superCatId": 1}
			]}}}`))
		case "/categories":
			assert.Equal(t, "[106]", r.URL.Query().Get("productLineIds"))
			_, _ = w.Write([]byte(`{"response": {"data": {"categories": [
				{"categoryId": 960, "categoryFriendlyName": "iPhone", "productLineId": 106}
			]}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, server.URL))
	require.NoError(t, err)

	ctx := context.Background()

	cats, err := client.SuperCats(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(1), cats[0].ID)
	assert.Equal(t, "Computing", cats[0].Name)

	lines, err := client.ProductLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(106), lines[0].ID)

	categories, err := client.Categories(ctx, 106)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(960), categories[0].ID)
	assert.Equal(t, "iPhone", categories[0].Name)
	assert.Equal(t, int64(106), categories[0].ProductLineID)
}

func TestNewClient_ValidatesConfig(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://api.example"
	cfg.SearchURL = "https://search.example"
	_, err = NewClient(cfg)
	assert.True(t, errors.Is(err, ErrConfigMissingIndexName))
}
