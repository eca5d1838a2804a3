package fixture

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFoldsDiacritics(t *testing.T) {
	s := NewServer()

	results := s.search("paine")
	require.Len(t, results, 1)
	assert.Equal(t, "Pâine Albă", results[0].Name)

	results = s.search("lapte")
	assert.Len(t, results, 2)

	results = s.search("")
	assert.Len(t, results, len(defaultCatalog()))
}

func TestHomePageMarkup(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	body := get(t, ts.URL+"/")

	assert.Contains(t, body, `id="header-search-bar-input"`)
	assert.Contains(t, body, "Acceptă toate")
	assert.Contains(t, body, `id="cookie-banner"`)
}

func TestAddToCartAndCheckoutMarkup(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	addProduct(t, ts.URL, "p1")
	addProduct(t, ts.URL, "p2")
	addProduct(t, ts.URL, "p2")

	body := get(t, ts.URL+"/checkout")

	assert.Contains(t, body, "2 produse")
	assert.Contains(t, body, "Lapte Zuzu 1L")
	assert.Contains(t, body, "Pâine Albă")
	// Line totals render as bani glued to the currency word and product code.
	assert.Contains(t, body, "649Lei24001")
	assert.Contains(t, body, "640Lei24002")
	// The promo decoy shares the row shape.
	assert.Contains(t, body, "Mega Promoția Săptămânii")
	// p1 is discounted, so the subtotal (shelf prices) sits above a distinct
	// grand total with the discount row between them.
	assert.Contains(t, body, "Subtotal: 13,39 lei")
	assert.Contains(t, body, "Reducere: 0,50 lei")
	assert.Contains(t, body, `class="cart-total"`)
	assert.Contains(t, body, "12,89 lei")

	subtotalAt := strings.Index(body, `class="subtotal-row"`)
	totalAt := strings.Index(body, `class="cart-total"`)
	require.GreaterOrEqual(t, subtotalAt, 0)
	require.GreaterOrEqual(t, totalAt, 0)
	assert.Less(t, subtotalAt, totalAt, "grand total must render after the subtotal row")
}

func TestCartJSON(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	addProduct(t, ts.URL, "p1")

	resp, err := http.Get(ts.URL + "/api/cart")
	require.NoError(t, err)
	defer resp.Body.Close()

	var lines []struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "Lapte Zuzu 1L", lines[0].Product.Name)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddUnknownProduct(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	resp, err := http.PostForm(ts.URL+"/cart/add", url.Values{"id": {"nope"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReset(t *testing.T) {
	s := NewServer()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	addProduct(t, ts.URL, "p1")
	s.Reset()

	body := get(t, ts.URL+"/checkout")
	assert.Contains(t, body, "0 produse")
	assert.NotContains(t, body, "649Lei24001")
}

func get(t *testing.T, url string) string {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func addProduct(t *testing.T, baseURL, id string) {
	t.Helper()

	resp, err := http.PostForm(baseURL+"/cart/add", url.Values{"id": {id}, "back": {"/"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
