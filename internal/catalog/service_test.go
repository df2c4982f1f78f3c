package catalog_test

import (
	"encoding/json"
	"fmt"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeStorefront answers GraphQL operations by name and records the requests.
type fakeStorefront struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(req recordedRequest) (int, any)
}

type recordedRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func (f *fakeStorefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req recordedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	status, body := f.respond(req)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeStorefront) lastRequest() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newService(t *testing.T, respond func(req recordedRequest) (int, any)) (*catalog.Service, *fakeStorefront) {
	t.Helper()

	fake := &fakeStorefront{respond: respond}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := storefront.NewClient(storefront.Config{Endpoint: server.URL, Token: "token"}, nil, nil)
	require.NoError(t, err)

	return catalog.NewService(client), fake
}

func TestFetchProducts(t *testing.T) {
	svc, fake := newService(t, func(req recordedRequest) (int, any) {
		return http.StatusOK, map[string]any{"data": map[string]any{
			"products": connection("c2", true, productNode("tee", "10.00", true), productNode("hoodie", "55.50", false)),
		}}
	})

	page, err := svc.FetchProducts(t.Context(), 2, "c0", "tag:summer")
	require.NoError(t, err)

	req := fake.lastRequest()
	assert.Equal(t, "GetProducts", req.OperationName)
	assert.Equal(t, map[string]any{"first": float64(2), "after": "c0", "query": "tag:summer"}, req.Variables)

	require.Len(t, page.Products, 2)
	assert.Equal(t, "tee", page.Products[0].Handle)
	assert.Equal(t, "hoodie", page.Products[1].Handle)
	assert.True(t, page.PageInfo.HasNextPage)
	assert.Equal(t, "c2", page.PageInfo.EndCursor)
	assert.Equal(t, "start", page.PageInfo.StartCursor)

	tee := page.Products[0]
	assert.Equal(t, []string{"summer", "cotton"}, tee.Tags)
	require.Len(t, tee.Images, 1)
	assert.Equal(t, "tee front", tee.Images[0].AltText)
	require.Len(t, tee.Variants, 1)
	assert.True(t, tee.Variants[0].Price.Amount.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "USD", tee.Variants[0].Price.Currency.String())
	assert.Equal(t, []domain.SelectedOption{{Name: "Size", Value: "M"}}, tee.Variants[0].SelectedOptions)
	assert.True(t, tee.IsOnSale())
	assert.False(t, page.Products[1].IsOnSale())
	assert.Empty(t, page.Products[1].Images[0].AltText)
}

func TestFetchProductsDefaults(t *testing.T) {
	svc, fake := newService(t, func(req recordedRequest) (int, any) {
		return http.StatusOK, map[string]any{"data": map[string]any{
			"products": connection("", false),
		}}
	})

	page, err := svc.FetchProducts(t.Context(), 0, "", "  ")
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.False(t, page.PageInfo.HasNextPage)
	assert.Empty(t, page.PageInfo.EndCursor)

	assert.Equal(t, map[string]any{"first": float64(catalog.DefaultPageSize)}, fake.lastRequest().Variables)

	_, err = svc.FetchProducts(t.Context(), 1000, "", "")
	require.NoError(t, err)
	assert.Equal(t, float64(catalog.MaxPageSize), fake.lastRequest().Variables["first"])
}

func TestFetchProduct(t *testing.T) {
	svc, fake := newService(t, func(req recordedRequest) (int, any) {
		if req.Variables["handle"] == "tee" {
			return http.StatusOK, map[string]any{"data": map[string]any{"productByHandle": productNode("tee", "10.00", false)}}
		}
		return http.StatusOK, map[string]any{"data": map[string]any{"productByHandle": nil}}
	})

	p, err := svc.FetchProduct(t.Context(), "tee")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "gid://shopify/Product/tee", p.ID)
	assert.Equal(t, "GetProduct", fake.lastRequest().OperationName)

	p, err = svc.FetchProduct(t.Context(), "nonexistent-handle")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = svc.FetchProduct(t.Context(), "")
	require.ErrorIs(t, err, catalog.ErrEmptyHandle)
	assert.NotErrorIs(t, err, storefront.ErrRequest)
}

func TestFetchCollectionProducts(t *testing.T) {
	svc, fake := newService(t, func(req recordedRequest) (int, any) {
		if req.Variables["handle"] != "summer" {
			return http.StatusOK, map[string]any{"data": map[string]any{"collectionByHandle": nil}}
		}
		return http.StatusOK, map[string]any{"data": map[string]any{"collectionByHandle": map[string]any{
			"id":          "gid://shopify/Collection/1",
			"title":       "Summer",
			"description": "Hot picks",
			"products":    connection("c1", false, productNode("tee", "10.00", false)),
		}}}
	})

	page, err := svc.FetchCollectionProducts(t.Context(), "summer", 10, "c0")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, domain.Collection{ID: "gid://shopify/Collection/1", Title: "Summer", Description: "Hot picks"}, page.Collection)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "c1", page.PageInfo.EndCursor)

	req := fake.lastRequest()
	assert.Equal(t, "GetCollectionProducts", req.OperationName)
	assert.Equal(t, map[string]any{"handle": "summer", "first": float64(10), "after": "c0"}, req.Variables)

	page, err = svc.FetchCollectionProducts(t.Context(), "bad-handle", 10, "")
	require.NoError(t, err)
	assert.Nil(t, page)

	tests := []struct {
		name      string
		first     int
		wantFirst float64
	}{
		{name: "zero uses default", first: 0, wantFirst: catalog.DefaultPageSize},
		{name: "negative uses default", first: -3, wantFirst: catalog.DefaultPageSize},
		{name: "at maximum", first: catalog.MaxPageSize, wantFirst: catalog.MaxPageSize},
		{name: "above maximum is capped", first: catalog.MaxPageSize + 1, wantFirst: catalog.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FetchCollectionProducts(t.Context(), "summer", tt.first, "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFirst, fake.lastRequest().Variables["first"])
		})
	}

	_, err = svc.FetchCollectionProducts(t.Context(), " ", 10, "")
	require.ErrorIs(t, err, catalog.ErrEmptyHandle)
}

func TestFetchErrors(t *testing.T) {
	t.Run("api error propagates as request error", func(t *testing.T) {
		svc, _ := newService(t, func(req recordedRequest) (int, any) {
			return http.StatusOK, map[string]any{"errors": []map[string]any{{"message": "access denied"}}}
		})

		_, err := svc.FetchProducts(t.Context(), 5, "", "")
		require.ErrorIs(t, err, storefront.ErrRequest)
		assert.ErrorContains(t, err, "access denied")

		_, err = svc.FetchProduct(t.Context(), "tee")
		require.ErrorIs(t, err, storefront.ErrRequest)

		_, err = svc.FetchCollectionProducts(t.Context(), "summer", 5, "")
		require.ErrorIs(t, err, storefront.ErrRequest)
	})

	t.Run("transport status propagates as request error", func(t *testing.T) {
		svc, _ := newService(t, func(req recordedRequest) (int, any) {
			return http.StatusUnauthorized, map[string]any{"errors": "unauthorized"}
		})

		_, err := svc.FetchProducts(t.Context(), 5, "", "")
		var reqErr *storefront.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	})

	t.Run("bad currency fails mapping", func(t *testing.T) {
		svc, _ := newService(t, func(req recordedRequest) (int, any) {
			node := productNode("tee", "10.00", false)
			node["priceRange"] = map[string]any{
				"minVariantPrice": money("1.00", "ZZZZ"),
				"maxVariantPrice": money("1.00", "USD"),
			}
			return http.StatusOK, map[string]any{"data": map[string]any{"productByHandle": node}}
		})

		_, err := svc.FetchProduct(t.Context(), "tee")
		require.Error(t, err)
		assert.NotErrorIs(t, err, storefront.ErrRequest)
		assert.ErrorContains(t, err, "minVariantPrice")
	})
}

func connection(endCursor string, hasNext bool, nodes ...map[string]any) map[string]any {
	edges := make([]map[string]any, 0, len(nodes))
	for i, n := range nodes {
		edges = append(edges, map[string]any{"node": n, "cursor": fmt.Sprintf("edge-%d", i)})
	}

	var end any
	if endCursor != "" {
		end = endCursor
	}

	return map[string]any{
		"edges": edges,
		"pageInfo": map[string]any{
			"hasNextPage":     hasNext,
			"hasPreviousPage": false,
			"startCursor":     "start",
			"endCursor":       end,
		},
	}
}

func productNode(handle, price string, onSale bool) map[string]any {
	var compareAt any
	if onSale {
		compareAt = money("20.00", "USD")
	}

	var altText any
	if handle == "tee" {
		altText = "tee front"
	}

	return map[string]any{
		"id":               "gid://shopify/Product/" + handle,
		"title":            handle,
		"handle":           handle,
		"description":      "A " + handle,
		"availableForSale": true,
		"tags":             []string{"summer", "cotton"},
		"vendor":           "Above Below",
		"productType":      "Apparel",
		"images": map[string]any{"edges": []map[string]any{{"node": map[string]any{
			"id": "gid://shopify/ProductImage/" + handle, "altText": altText,
			"url": "https://cdn.example.com/" + handle + ".png", "width": 800, "height": 600,
		}}}},
		"variants": map[string]any{"edges": []map[string]any{{"node": map[string]any{
			"id":               "gid://shopify/ProductVariant/" + handle,
			"title":            "M",
			"availableForSale": true,
			"price":            money(price, "USD"),
			"compareAtPrice":   compareAt,
			"selectedOptions":  []map[string]any{{"name": "Size", "value": "M"}},
		}}}},
		"priceRange": map[string]any{
			"minVariantPrice": money(price, "USD"),
			"maxVariantPrice": money(price, "USD"),
		},
	}
}

func money(amount, code string) map[string]any {
	return map[string]any{"amount": amount, "currencyCode": code}
}
