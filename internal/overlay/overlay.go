// Package overlay closes the transient UI layers (cookie banners, store
// selection modals) that intercept clicks on mega-image.ro. Everything here
// is best-effort: a missing banner is the common case, not a failure, and no
// call in this package ever blocks the scenario with an error.
package overlay

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/felixnica/megacart-e2e/internal/locator"
)

// Category is one family of overlays with the localized button patterns that
// close it. Patterns are tried in order and at most one button is clicked per
// category.
type Category struct {
	Name     string
	Patterns []*regexp.Regexp
}

// DefaultCategories covers the Romanian cookie-consent and location/store
// modals seen on the target site.
func DefaultCategories() []Category {
	return []Category{
		{
			Name: "cookie-consent",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)accept`),
				regexp.MustCompile(`(?i)sunt de acord`),
				regexp.MustCompile(`(?i)de acord`),
				regexp.MustCompile(`(?i)consimt`),
				regexp.MustCompile(`(?i)acceptă`),
				regexp.MustCompile(`(?i)accept all`),
				regexp.MustCompile(`(?i)acceptă toate`),
			},
		},
		{
			Name: "location-modal",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)închide`),
				regexp.MustCompile(`(?i)close`),
				regexp.MustCompile(`(?i)^ok$`),
				regexp.MustCompile(`(?i)got it`),
				regexp.MustCompile(`(?i)continua`),
			},
		},
	}
}

type Dismisser struct {
	categories []Category
	settleWait time.Duration
	clickWait  time.Duration
	logger     *slog.Logger
}

const defaultClickWait = 300 * time.Millisecond

// NewDismisser builds a Dismisser over the given categories. clickWait is the
// pause after each successful close click (SCRAPER_OVERLAY_DELAY); zero or
// negative falls back to the default.
func NewDismisser(categories []Category, clickWait time.Duration, logger *slog.Logger) *Dismisser {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	if clickWait <= 0 {
		clickWait = defaultClickWait
	}
	return &Dismisser{
		categories: categories,
		settleWait: 500 * time.Millisecond,
		clickWait:  clickWait,
		logger:     logger.With("component", "overlay"),
	}
}

// Dismiss gives overlays a moment to appear, then closes the first visible
// control of each category. It completes in bounded time and never returns
// an error: every per-category outcome collapses to a no-op for the caller.
func (d *Dismisser) Dismiss(page playwright.Page) {
	page.WaitForTimeout(float64(d.settleWait.Milliseconds()))

	for _, category := range d.categories {
		outcome := d.dismissCategory(page, category)
		if outcome != locator.NotFound {
			d.logger.Debug("overlay handled", "category", category.Name, "outcome", outcome.String())
		}
	}
}

func (d *Dismisser) dismissCategory(page playwright.Page, category Category) locator.Outcome {
	for _, pattern := range category.Patterns {
		target := locator.Target{
			Name:       category.Name,
			Strategies: []locator.Strategy{locator.Role(*playwright.AriaRoleButton, pattern)},
		}

		outcome := locator.ClickFirstVisible(page, target)
		if outcome == locator.NotFound {
			continue
		}

		if outcome == locator.Acted {
			// Let the close animation finish before the next category check.
			page.WaitForTimeout(float64(d.clickWait.Milliseconds()))
		}
		return outcome
	}

	return locator.NotFound
}
