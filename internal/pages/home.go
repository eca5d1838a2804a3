// Package pages holds the page objects for the shopping flow. Each object
// wraps one surface of the site behind domain actions built from resilient
// locator targets; selector sets are injected so they can be overridden per
// site revision.
package pages

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/felixnica/megacart-e2e/internal/browser"
	"github.com/felixnica/megacart-e2e/internal/locator"
	"github.com/felixnica/megacart-e2e/internal/overlay"
)

type Home struct {
	page      playwright.Page
	browser   *browser.Browser
	selectors HomeSelectors
	dismisser *overlay.Dismisser
	timeout   time.Duration
	logger    *slog.Logger
}

func NewHome(page playwright.Page, b *browser.Browser, selectors HomeSelectors, dismisser *overlay.Dismisser, timeout time.Duration, logger *slog.Logger) *Home {
	return &Home{
		page:      page,
		browser:   b,
		selectors: selectors,
		dismisser: dismisser,
		timeout:   timeout,
		logger:    logger.With("component", "home-page"),
	}
}

func (h *Home) Open(baseURL string) error {
	if err := h.browser.Navigate(h.page, baseURL+"/"); err != nil {
		return err
	}

	h.dismisser.Dismiss(h.page)
	h.browser.Settle(h.page, 0)

	return nil
}

// Search fills the header search box and submits with Enter.
func (h *Home) Search(term string) error {
	h.logger.Info("searching", "term", term)

	searchBox, err := locator.Resolve(h.page, h.selectors.SearchBox, h.timeout)
	if err != nil {
		return fmt.Errorf("failed to locate search box: %w", err)
	}

	if err := searchBox.Fill(term); err != nil {
		return fmt.Errorf("failed to fill search box: %w", err)
	}

	if err := searchBox.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}

	h.browser.Settle(h.page, 0)

	return nil
}
