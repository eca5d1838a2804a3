// cartcheck drives the search → add-to-cart → verify-totals flow against a
// live site and reports a verdict. It sequences the page objects; all
// extraction logic lives in the internal packages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/felixnica/megacart-e2e/internal/browser"
	"github.com/felixnica/megacart-e2e/internal/cartparse"
	"github.com/felixnica/megacart-e2e/internal/config"
	"github.com/felixnica/megacart-e2e/internal/models"
	"github.com/felixnica/megacart-e2e/internal/overlay"
	"github.com/felixnica/megacart-e2e/internal/pages"
	"github.com/felixnica/megacart-e2e/internal/price"
)

const totalTolerance = 0.05

func main() {
	var (
		term1    = flag.String("term1", "lapte", "First search term")
		term2    = flag.String("term2", "paine", "Second search term")
		baseURL  = flag.String("base-url", "", "Override SITE_BASE_URL")
		headless = flag.Bool("headless", true, "Run browser in headless mode")
		signIn   = flag.Bool("login", false, "Sign in with LOGIN_EMAIL/LOGIN_PASSWORD before the scenario")
	)
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *baseURL != "" {
		cfg.Site.BaseURL = *baseURL
	}

	logger := newLogger(cfg.Logging).With("run_id", uuid.New().String())
	logger.Info("starting cart check", "base_url", cfg.Site.BaseURL, "terms", []string{*term1, *term2})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	browserOpts := &browser.Options{
		Headless:        *headless && cfg.Browser.Headless,
		Timeout:         cfg.Browser.Timeout,
		UserAgent:       cfg.Browser.UserAgent,
		ViewportWidth:   cfg.Browser.ViewportWidth,
		ViewportHeight:  cfg.Browser.ViewportHeight,
		AcceptLanguage:  cfg.Browser.AcceptLanguage,
		TimezoneID:      cfg.Browser.TimezoneID,
		Locale:          cfg.Browser.Locale,
		SettleDelay:     cfg.Scraper.SettleDelay,
		NetworkIdleWait: cfg.Scraper.NetworkIdleWait,
	}

	b, err := browser.New(browserOpts)
	if err != nil {
		logger.Error("failed to initialize browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	if err := run(ctx, b, cfg, *term1, *term2, *signIn, logger); err != nil {
		logger.Error("cart check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("cart check passed")
}

func run(ctx context.Context, b *browser.Browser, cfg *config.Config, term1, term2 string, signIn bool, logger *slog.Logger) error {
	page, err := b.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	dismisser := overlay.NewDismisser(nil, cfg.Scraper.OverlayDelay, logger)
	home := pages.NewHome(page, b, pages.DefaultHomeSelectors(), dismisser, cfg.Scraper.ElementTimeout, logger)
	listing := pages.NewListing(page, b, pages.DefaultListingSelectors(), price.RON, cfg.Scraper.ElementTimeout, logger)
	cart := pages.NewCart(page, b, pages.DefaultCartSelectors(), price.RON, cfg.Site.BaseURL+cfg.Site.CheckoutURL, logger)

	if signIn {
		login := pages.NewLogin(page, b, pages.DefaultLoginSelectors(), dismisser, cfg.Scraper.ElementTimeout, logger)
		if err := login.SignIn(cfg.Site.BaseURL, cfg.Login.Email, cfg.Login.Password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}

	if err := home.Open(cfg.Site.BaseURL); err != nil {
		return err
	}

	var added []models.ProductSummary
	for _, term := range []string{term1, term2} {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := home.Search(term); err != nil {
			return err
		}

		product, err := listing.PickAndAddFirstVisible()
		if err != nil {
			return fmt.Errorf("failed to add product for %q: %w", term, err)
		}
		if !product.IsValid() {
			return fmt.Errorf("implausible product extracted for %q: name=%q price=%.2f", term, product.Name, product.Price)
		}
		added = append(added, product)
	}

	if err := cart.Open(); err != nil {
		return err
	}

	summary, err := cart.Summary()
	if err != nil {
		return err
	}

	return verify(summary, added, logger)
}

func verify(summary models.CartSummary, added []models.ProductSummary, logger *slog.Logger) error {
	for i, item := range summary.LineItems {
		logger.Info("cart line item", "index", i+1, "name", item.Name, "qty", item.Quantity, "line_total", item.LineTotal)
	}
	logger.Info("cart totals", "displayed", summary.DisplayedTotal, "computed", summary.ComputedTotal())

	if len(summary.LineItems) < len(added) {
		return fmt.Errorf("expected at least %d line items, found %d", len(added), len(summary.LineItems))
	}

	if summary.TotalQuantity() < len(added) {
		return fmt.Errorf("expected total quantity of at least %d, found %d", len(added), summary.TotalQuantity())
	}

	for _, product := range added {
		if !inCart(summary, product) {
			return fmt.Errorf("product %q not found in cart", product.Name)
		}
	}

	if err := cartparse.CheckTotal(summary, totalTolerance); err != nil {
		return err
	}

	return nil
}

func inCart(summary models.CartSummary, product models.ProductSummary) bool {
	for _, item := range summary.LineItems {
		if cartparse.NameMatches(item.Name, product.Name) {
			return true
		}
	}
	return false
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
