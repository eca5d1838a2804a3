package pages

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/felixnica/megacart-e2e/internal/browser"
	"github.com/felixnica/megacart-e2e/internal/models"
	"github.com/felixnica/megacart-e2e/internal/price"
)

type Listing struct {
	page      playwright.Page
	browser   *browser.Browser
	selectors ListingSelectors
	locale    price.Locale
	timeout   time.Duration
	logger    *slog.Logger
}

func NewListing(page playwright.Page, b *browser.Browser, selectors ListingSelectors, locale price.Locale, timeout time.Duration, logger *slog.Logger) *Listing {
	return &Listing{
		page:      page,
		browser:   b,
		selectors: selectors,
		locale:    locale,
		timeout:   timeout,
		logger:    logger.With("component", "listing-page"),
	}
}

// Cards returns the live product-card candidates: broad structural containers
// narrowed to those carrying currency text, which separates real cards from
// page chrome.
func (l *Listing) Cards() playwright.Locator {
	return l.page.
		Locator(l.selectors.CardContainers).
		Filter(playwright.LocatorFilterOptions{HasText: l.selectors.PriceFilter})
}

func (l *Listing) CardName(card playwright.Locator) (string, error) {
	primary := card.Locator(l.selectors.NamePrimary)
	if count, err := primary.Count(); err == nil && count > 0 {
		text, err := primary.First().TextContent()
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
	}

	text, err := card.Locator(l.selectors.NameFallbacks).First().TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read product name: %w", err)
	}

	return strings.TrimSpace(text), nil
}

func (l *Listing) CardPrice(card playwright.Locator) (float64, error) {
	text, err := card.Locator(l.selectors.Price).First().TextContent()
	if err != nil {
		return 0, fmt.Errorf("failed to read product price: %w", err)
	}

	amount, err := l.locale.ParseAmount(text)
	if err != nil {
		return 0, fmt.Errorf("failed to parse listing price: %w", err)
	}

	return amount, nil
}

// Products enumerates the visible cards into summaries. Cards whose price
// does not parse are skipped, not fatal; a caller that needs a usable product
// goes through PickAndAddFirstVisible instead.
func (l *Listing) Products() ([]models.ProductSummary, error) {
	cards := l.Cards()

	count, err := cards.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count product cards: %w", err)
	}

	products := make([]models.ProductSummary, 0, count)
	for i := 0; i < count; i++ {
		card := cards.Nth(i)

		name, err := l.CardName(card)
		if err != nil || name == "" {
			continue
		}

		amount, err := l.CardPrice(card)
		if err != nil {
			l.logger.Warn("skipping card with unparseable price", "name", name, "error", err)
			continue
		}

		products = append(products, models.ProductSummary{Name: name, Price: amount})
	}

	return products, nil
}

// AddCardToCart clicks the card's add-control. Overlays are known to cover
// the button, so a visible drawer is cancelled first and the click is forced;
// the delivery modal that can appear afterwards is closed best-effort.
func (l *Listing) AddCardToCart(card playwright.Locator) error {
	drawer := l.page.Locator(l.selectors.DrawerOverlay)
	if visible, _ := drawer.IsVisible(); visible {
		l.logger.Debug("dismissing drawer overlay")
		if err := l.page.Keyboard().Press("Escape"); err != nil {
			l.logger.Debug("escape press failed", "error", err)
		}
		l.page.WaitForTimeout(500)
	}

	addButton := card.Locator(l.selectors.AddToCartPrimary).First()
	if visible, _ := addButton.IsVisible(); !visible {
		addButton = card.GetByRole(*playwright.AriaRoleButton, playwright.LocatorGetByRoleOptions{
			Name: l.selectors.AddToCartFallback,
		}).First()
	}

	if err := addButton.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)}); err != nil {
		return fmt.Errorf("failed to click add-to-cart: %w", err)
	}

	l.browser.Settle(l.page, time.Second)
	l.dismissDeliveryModal()

	return nil
}

func (l *Listing) dismissDeliveryModal() {
	modal := l.page.
		Locator(l.selectors.DeliveryModal).
		Filter(playwright.LocatorFilterOptions{HasText: l.selectors.DeliveryText})

	visible, err := modal.First().IsVisible()
	if err != nil || !visible {
		return
	}

	l.logger.Debug("dismissing delivery selection modal")

	closeButton := l.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: l.selectors.ModalClose,
	}).First()

	if visible, _ := closeButton.IsVisible(); visible {
		if err := closeButton.Click(); err != nil {
			l.logger.Debug("modal close click failed", "error", err)
		}
	} else if err := l.page.Keyboard().Press("Escape"); err != nil {
		l.logger.Debug("escape press failed", "error", err)
	}

	l.browser.Settle(l.page, 500*time.Millisecond)
}

// PickAndAddFirstVisible captures name and price of the first visible card,
// then adds it to the cart. The summary reflects the card as it was before
// the click; post-click modal dismissals never change it. No card becoming
// visible within the bound is fatal.
func (l *Listing) PickAndAddFirstVisible() (models.ProductSummary, error) {
	cards := l.Cards()

	if err := cards.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(l.timeout.Milliseconds())),
	}); err != nil {
		return models.ProductSummary{}, fmt.Errorf("no product card became visible: %w", err)
	}

	card := cards.First()

	name, err := l.CardName(card)
	if err != nil {
		return models.ProductSummary{}, err
	}

	amount, err := l.CardPrice(card)
	if err != nil {
		return models.ProductSummary{}, err
	}

	summary := models.ProductSummary{Name: name, Price: amount}

	if err := l.AddCardToCart(card); err != nil {
		return models.ProductSummary{}, err
	}

	l.logger.Info("added product to cart", "name", summary.Name, "price", summary.Price)

	return summary, nil
}
