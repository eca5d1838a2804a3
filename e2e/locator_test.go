package e2e

import (
	"errors"
	"testing"
	"time"

	"github.com/felixnica/megacart-e2e/internal/locator"
)

// TestResolveSkipsInvisibleMatch pins the visibility contract: an element that
// is attached to the DOM but hidden counts as absent, so resolution falls
// through to the next strategy instead of returning the hidden match.
func TestResolveSkipsInvisibleMatch(t *testing.T) {
	requireBrowser(t)

	page, err := b.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	err = page.SetContent(`<body>
	  <input id="legacy-search" type="text" style="display:none">
	  <input id="live-search" type="search" placeholder="Ce cauți azi?">
	</body>`)
	if err != nil {
		t.Fatalf("failed to set page content: %v", err)
	}

	target := locator.Target{
		Name: "search input",
		Strategies: []locator.Strategy{
			locator.CSS("#legacy-search"),
			locator.CSS(`input[type="search"]`),
		},
	}

	resolved, err := locator.Resolve(page, target, 2*time.Second)
	if err != nil {
		t.Fatalf("expected the visible fallback to resolve, got: %v", err)
	}

	id, err := resolved.GetAttribute("id")
	if err != nil {
		t.Fatal(err)
	}
	if id != "live-search" {
		t.Errorf("expected the visible element live-search, got %q", id)
	}
}

// TestResolveShortCircuitsOnFirstStrategy checks that strategy order is
// priority order: when the first strategy has a visible match, later
// strategies are never consulted even if they would also match.
func TestResolveShortCircuitsOnFirstStrategy(t *testing.T) {
	requireBrowser(t)

	page, err := b.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	err = page.SetContent(`<body>
	  <input id="primary" type="search">
	  <input id="secondary" type="search">
	</body>`)
	if err != nil {
		t.Fatalf("failed to set page content: %v", err)
	}

	target := locator.Target{
		Name: "search input",
		Strategies: []locator.Strategy{
			locator.CSS("#primary"),
			locator.CSS(`input[type="search"]`),
		},
	}

	resolved, err := locator.Resolve(page, target, 2*time.Second)
	if err != nil {
		t.Fatalf("expected resolution to succeed: %v", err)
	}

	id, err := resolved.GetAttribute("id")
	if err != nil {
		t.Fatal(err)
	}
	if id != "primary" {
		t.Errorf("expected first strategy's match primary, got %q", id)
	}
}

// TestResolveNotFoundWhenAllHidden: every strategy matching only hidden
// elements ends in ErrNotFound once the bounded wait elapses.
func TestResolveNotFoundWhenAllHidden(t *testing.T) {
	requireBrowser(t)

	page, err := b.NewPage()
	if err != nil {
		t.Fatal(err)
	}
	defer page.Close()

	err = page.SetContent(`<body>
	  <input id="hidden-one" style="display:none">
	  <input id="hidden-two" hidden>
	</body>`)
	if err != nil {
		t.Fatalf("failed to set page content: %v", err)
	}

	target := locator.Target{
		Name: "search input",
		Strategies: []locator.Strategy{
			locator.CSS("#hidden-one"),
			locator.CSS("#hidden-two"),
		},
	}

	if _, err := locator.Resolve(page, target, 500*time.Millisecond); !errors.Is(err, locator.ErrNotFound) {
		t.Errorf("expected ErrNotFound for hidden-only matches, got: %v", err)
	}
}
