package pages

import (
	"regexp"

	"github.com/playwright-community/playwright-go"

	"github.com/felixnica/megacart-e2e/internal/locator"
)

// Selector sets are explicit configuration passed into each page object so a
// site revision only touches the Default* constructors (or a test injects its
// own set) instead of logic.

type HomeSelectors struct {
	SearchBox locator.Target
}

func DefaultHomeSelectors() HomeSelectors {
	return HomeSelectors{
		SearchBox: locator.Target{
			Name: "search input",
			Strategies: []locator.Strategy{
				locator.CSS("#header-search-bar-input"),
				locator.Placeholder(regexp.MustCompile(`(?i)ce cau[tț]i`)),
				locator.Role(*playwright.AriaRoleSearchbox, nil),
				locator.CSS(`input[type="search"]`),
				locator.CSS(`input[placeholder*="search" i]`),
			},
		},
	}
}

type ListingSelectors struct {
	CardContainers    string
	PriceFilter       *regexp.Regexp
	NamePrimary       string
	NameFallbacks     string
	Price             string
	AddToCartPrimary  string
	AddToCartFallback *regexp.Regexp
	DrawerOverlay     string
	DeliveryModal     string
	DeliveryText      *regexp.Regexp
	ModalClose        *regexp.Regexp
}

func DefaultListingSelectors() ListingSelectors {
	return ListingSelectors{
		CardContainers:    `[data-testid*="product-card"], [data-testid*="product-item"], article, .product-card, .product-item, .product`,
		PriceFilter:       regexp.MustCompile(`(?i)lei|RON`),
		NamePrimary:       `h3[data-testid="styled-title"]`,
		NameFallbacks:     `h3, h2, h4, .name, .product-title, .product-name`,
		Price:             `[data-testid*="price"], .price, .product-price, [class*="price"]`,
		AddToCartPrimary:  `[data-testid="product-block-add"]`,
		AddToCartFallback: regexp.MustCompile(`(?i)adaug[ăa]\s+(î|i)n\s+co[șs]`),
		DrawerOverlay:     `[data-testid="ecom-drawer-overlay"]`,
		DeliveryModal:     `[role="dialog"], .modal, [class*="modal"]`,
		DeliveryText:      regexp.MustCompile(`(?i)livr|deliver`),
		ModalClose:        regexp.MustCompile(`(?i)închide|close|inchide|x`),
	}
}

type CartSelectors struct {
	HeaderButtons     string
	HeaderIcon        string
	BadgePattern      *regexp.Regexp
	LineItemContainer string
	LineItemImage     string
	UnitPricePattern  *regexp.Regexp
	CountLabelPattern *regexp.Regexp
	TotalSelectors    []string
}

func DefaultCartSelectors() CartSelectors {
	return CartSelectors{
		HeaderButtons:     "button, a",
		HeaderIcon:        "svg",
		BadgePattern:      regexp.MustCompile(`^\d+$`),
		LineItemContainer: "li",
		LineItemImage:     "img",
		UnitPricePattern:  regexp.MustCompile(`Lei/(Kg|L|buc)`),
		CountLabelPattern: regexp.MustCompile(`^\d+\s+produse?$`),
		TotalSelectors: []string{
			`[data-testid*="cart-total"]`,
			`[data-testid*="total"]`,
			`[class*="total"]`,
			".cart-total",
			".summary-total",
			".grand-total",
		},
	}
}

type LoginSelectors struct {
	Username    locator.Target
	Password    locator.Target
	LoginButton locator.Target
}

func DefaultLoginSelectors() LoginSelectors {
	return LoginSelectors{
		Username: locator.Target{
			Name: "username input",
			Strategies: []locator.Strategy{
				locator.CSS(`input[name="j_username"]`),
				locator.CSS("#j_username"),
			},
		},
		Password: locator.Target{
			Name: "password input",
			Strategies: []locator.Strategy{
				locator.CSS(`input[name="password"]`),
				locator.CSS("#current-password"),
				locator.CSS(`input[type="password"]`),
			},
		},
		LoginButton: locator.Target{
			Name: "login button",
			Strategies: []locator.Strategy{
				locator.Role(*playwright.AriaRoleButton, regexp.MustCompile(`(?i)autentificare|logare|conectare`)),
				locator.CSS(`button[type="submit"]`),
			},
		},
	}
}
