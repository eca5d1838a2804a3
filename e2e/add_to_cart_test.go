package e2e

import (
	"math"
	"strings"
	"testing"

	"github.com/felixnica/megacart-e2e/internal/cartparse"
	"github.com/felixnica/megacart-e2e/internal/models"
	"github.com/felixnica/megacart-e2e/internal/overlay"
	"github.com/felixnica/megacart-e2e/internal/pages"
	"github.com/felixnica/megacart-e2e/internal/price"
)

// TestAddTwoItemsAndValidateCart walks the whole flow: search two grocery
// terms, add the first listed product of each, open the cart and verify item
// count, quantities, names and the displayed total against the line-item sum.
func TestAddTwoItemsAndValidateCart(t *testing.T) {
	requireBrowser(t)
	site.Reset()

	page, err := b.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	dismisser := overlay.NewDismisser(nil, 0, logger)
	home := pages.NewHome(page, b, pages.DefaultHomeSelectors(), dismisser, elementTimeout, logger)
	listing := pages.NewListing(page, b, pages.DefaultListingSelectors(), price.RON, elementTimeout, logger)
	cart := pages.NewCart(page, b, pages.DefaultCartSelectors(), price.RON, baseURL+"/checkout", logger)

	// Given I am on the home page with overlays dismissed
	if err := home.Open(baseURL); err != nil {
		t.Fatalf("failed to open home page: %v", err)
	}

	// When I search "lapte" and add the first visible product
	if err := home.Search("lapte"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	product1, err := listing.PickAndAddFirstVisible()
	if err != nil {
		t.Fatalf("failed to add first product: %v", err)
	}
	if product1.Name != "Lapte Zuzu 1L" {
		t.Errorf("expected first product 'Lapte Zuzu 1L', got %q", product1.Name)
	}
	if product1.Price != 6.49 {
		t.Errorf("expected first product price 6.49, got %v", product1.Price)
	}

	// And I search "paine" and add the first visible product
	if err := home.Search("paine"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	product2, err := listing.PickAndAddFirstVisible()
	if err != nil {
		t.Fatalf("failed to add second product: %v", err)
	}
	if product2.Name != "Pâine Albă" {
		t.Errorf("expected second product 'Pâine Albă', got %q", product2.Name)
	}
	if product2.Price != 3.20 {
		t.Errorf("expected second product price 3.20, got %v", product2.Price)
	}

	// And I open the cart
	if err := cart.Open(); err != nil {
		t.Fatalf("failed to open cart: %v", err)
	}

	summary, err := cart.Summary()
	if err != nil {
		t.Fatalf("failed to read cart: %v", err)
	}

	// Then the cart holds both products and nothing promotional
	if len(summary.LineItems) < 2 {
		t.Fatalf("expected at least 2 line items, got %d", len(summary.LineItems))
	}
	if summary.TotalQuantity() < 2 {
		t.Errorf("expected total quantity >= 2, got %d", summary.TotalQuantity())
	}
	for _, item := range summary.LineItems {
		if strings.Contains(strings.ToLower(item.Name), "promo") {
			t.Errorf("promotional row leaked into line items: %q", item.Name)
		}
	}

	if !nameInCart(summary.LineItems, product1.Name) {
		t.Errorf("product %q not found in cart", product1.Name)
	}
	if !nameInCart(summary.LineItems, product2.Name) {
		t.Errorf("product %q not found in cart", product2.Name)
	}

	// And the displayed total matches the line-item sum within 0.05
	if summary.DisplayedTotal <= 0 {
		t.Errorf("expected a positive displayed total, got %v", summary.DisplayedTotal)
	}
	if err := cartparse.CheckTotal(summary, 0.05); err != nil {
		t.Error(err)
	}

	// The first product is discounted, so the subtotal row above the grand
	// total carries a higher figure. Reading any row but the last one of the
	// summary section would surface here.
	wantTotal := product1.Price + product2.Price
	if math.Abs(summary.DisplayedTotal-wantTotal) > 0.0001 {
		t.Errorf("expected displayed total %.2f (grand total), got %.2f", wantTotal, summary.DisplayedTotal)
	}
}

func TestListProducts(t *testing.T) {
	requireBrowser(t)
	site.Reset()

	page, err := b.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	dismisser := overlay.NewDismisser(nil, 0, logger)
	home := pages.NewHome(page, b, pages.DefaultHomeSelectors(), dismisser, elementTimeout, logger)
	listing := pages.NewListing(page, b, pages.DefaultListingSelectors(), price.RON, elementTimeout, logger)

	if err := home.Open(baseURL); err != nil {
		t.Fatalf("failed to open home page: %v", err)
	}
	if err := home.Search("lapte"); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	products, err := listing.Products()
	if err != nil {
		t.Fatalf("failed to list products: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products for 'lapte', got %d", len(products))
	}
	for _, p := range products {
		if p.Name == "" || p.Price <= 0 {
			t.Errorf("implausible product summary: %+v", p)
		}
	}
}

// TestDismissOverlaysNeverFails exercises the no-throw contract in the three
// page states: overlay present, already dismissed, and a blank page with no
// buttons at all.
func TestDismissOverlaysNeverFails(t *testing.T) {
	requireBrowser(t)

	page, err := b.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	dismisser := overlay.NewDismisser(nil, 0, logger)

	if _, err := page.Goto(baseURL + "/"); err != nil {
		t.Fatalf("failed to open home page: %v", err)
	}

	dismisser.Dismiss(page) // banner present
	dismisser.Dismiss(page) // banner already gone

	if _, err := page.Goto("about:blank"); err != nil {
		t.Fatalf("failed to open blank page: %v", err)
	}
	dismisser.Dismiss(page)
}

func nameInCart(items []models.CartLineItem, name string) bool {
	for _, item := range items {
		if cartparse.NameMatches(item.Name, name) {
			return true
		}
	}
	return false
}
