package pages

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/felixnica/megacart-e2e/internal/browser"
	"github.com/felixnica/megacart-e2e/internal/cartparse"
	"github.com/felixnica/megacart-e2e/internal/models"
	"github.com/felixnica/megacart-e2e/internal/price"
)

type Cart struct {
	page        playwright.Page
	browser     *browser.Browser
	selectors   CartSelectors
	rowParser   *cartparse.RowParser
	locale      price.Locale
	checkoutURL string
	logger      *slog.Logger
}

func NewCart(page playwright.Page, b *browser.Browser, selectors CartSelectors, locale price.Locale, checkoutURL string, logger *slog.Logger) *Cart {
	return &Cart{
		page:        page,
		browser:     b,
		selectors:   selectors,
		rowParser:   cartparse.NewRowParser(locale),
		locale:      locale,
		checkoutURL: checkoutURL,
		logger:      logger.With("component", "cart-page"),
	}
}

// Open clicks the badge-bearing cart button in the header, falling back to
// direct checkout navigation when the button is not visible.
func (c *Cart) Open() error {
	cartButton := c.page.
		Locator(c.selectors.HeaderButtons).
		Filter(playwright.LocatorFilterOptions{Has: c.page.Locator(c.selectors.HeaderIcon)}).
		Filter(playwright.LocatorFilterOptions{HasText: c.selectors.BadgePattern}).
		First()

	if visible, _ := cartButton.IsVisible(); visible {
		c.logger.Debug("clicking cart button")
		if err := cartButton.Click(); err != nil {
			return fmt.Errorf("failed to click cart button: %w", err)
		}
		c.browser.Settle(c.page, 2*time.Second)
	} else {
		c.logger.Debug("cart button not found, navigating directly", "url", c.checkoutURL)
		if err := c.browser.Navigate(c.page, c.checkoutURL); err != nil {
			return fmt.Errorf("failed to open cart: %w", err)
		}
		c.browser.Settle(c.page, time.Second)
	}

	c.logger.Info("cart opened", "url", c.page.URL())

	return nil
}

// lineItemRows matches rows that carry both an image and a per-unit price
// indicator. Promotional banners usually lack the unit price but can still
// share the shape, which is what the count-label trimming is for.
func (c *Cart) lineItemRows() playwright.Locator {
	return c.page.
		Locator(c.selectors.LineItemContainer).
		Filter(playwright.LocatorFilterOptions{Has: c.page.Locator(c.selectors.LineItemImage)}).
		Filter(playwright.LocatorFilterOptions{HasText: c.selectors.UnitPricePattern})
}

// Items reads the accepted line items in document order. The cart's own
// "N produse" label trims the structural candidates when it reports fewer
// rows than matched; individual rows that fail extraction are dropped as
// noise, never as errors.
func (c *Cart) Items() ([]models.CartLineItem, error) {
	rows := c.lineItemRows()

	raw, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count cart rows: %w", err)
	}

	label, hasLabel := c.readCountLabel()
	bounded := cartparse.BoundedCandidates(raw, label, hasLabel)
	if bounded < raw {
		c.logger.Debug("trimming cart candidates", "raw", raw, "label", label, "bounded", bounded)
	}

	items := make([]models.CartLineItem, 0, bounded)
	for i := 0; i < bounded; i++ {
		row := rows.Nth(i)

		html, err := outerHTML(row)
		if err != nil {
			c.logger.Warn("failed to read cart row", "index", i, "error", err)
			continue
		}

		item, ok := c.rowParser.ParseRow(html)
		if !ok {
			continue
		}

		// The value attribute does not track user edits; the live control
		// value wins when the row has one.
		if qty, ok := c.liveQuantity(row); ok {
			item.Quantity = qty
		}

		items = append(items, item)
	}

	return items, nil
}

func (c *Cart) readCountLabel() (int, bool) {
	labelText, err := c.page.GetByText(c.selectors.CountLabelPattern).First().TextContent(
		playwright.LocatorTextContentOptions{Timeout: playwright.Float(1000)},
	)
	if err != nil {
		return 0, false
	}

	return cartparse.ParseCountLabel(labelText)
}

func (c *Cart) liveQuantity(row playwright.Locator) (int, bool) {
	spin := row.GetByRole(*playwright.AriaRoleSpinbutton).First()

	count, err := spin.Count()
	if err != nil || count == 0 {
		return 0, false
	}

	value, err := spin.InputValue(playwright.LocatorInputValueOptions{Timeout: playwright.Float(1000)})
	if err != nil {
		return 0, false
	}

	qty, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || qty < 1 {
		return 0, false
	}

	return qty, true
}

// Total walks the candidate total selectors and returns the first positive
// parse of a last-matching element (the grand total renders after subtotal
// and discount rows). An unfindable total is a soft signal reported as zero,
// never a failure.
func (c *Cart) Total() float64 {
	for _, selector := range c.selectors.TotalSelectors {
		elements := c.page.Locator(selector)

		count, err := elements.Count()
		if err != nil || count == 0 {
			continue
		}

		text, err := elements.Last().TextContent()
		if err != nil {
			continue
		}

		amount, err := c.locale.ParseAmount(text)
		if err == nil && amount > 0 {
			return amount
		}
	}

	c.logger.Warn("could not find cart total")
	return 0
}

// Summary is the readCart operation: accepted line items plus the displayed
// total.
func (c *Cart) Summary() (models.CartSummary, error) {
	items, err := c.Items()
	if err != nil {
		return models.CartSummary{}, err
	}

	return models.CartSummary{
		LineItems:      items,
		DisplayedTotal: c.Total(),
	}, nil
}

func outerHTML(loc playwright.Locator) (string, error) {
	result, err := loc.Evaluate("el => el.outerHTML", nil)
	if err != nil {
		return "", err
	}

	html, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected outerHTML result type %T", result)
	}

	return html, nil
}
