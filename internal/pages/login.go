package pages

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/felixnica/megacart-e2e/internal/browser"
	"github.com/felixnica/megacart-e2e/internal/locator"
	"github.com/felixnica/megacart-e2e/internal/overlay"
)

type Login struct {
	page      playwright.Page
	browser   *browser.Browser
	selectors LoginSelectors
	dismisser *overlay.Dismisser
	timeout   time.Duration
	logger    *slog.Logger
}

func NewLogin(page playwright.Page, b *browser.Browser, selectors LoginSelectors, dismisser *overlay.Dismisser, timeout time.Duration, logger *slog.Logger) *Login {
	return &Login{
		page:      page,
		browser:   b,
		selectors: selectors,
		dismisser: dismisser,
		timeout:   timeout,
		logger:    logger.With("component", "login-page"),
	}
}

// SignIn authenticates through the /login form. Enter in the password field
// is tried first; the submit button is only clicked (forced, overlays linger
// here) when the page did not move on.
func (l *Login) SignIn(baseURL, email, password string) error {
	l.logger.Info("signing in", "email", email)

	if err := l.browser.Navigate(l.page, baseURL+"/login"); err != nil {
		return err
	}
	l.dismisser.Dismiss(l.page)
	l.browser.Settle(l.page, 0)

	username, err := locator.Resolve(l.page, l.selectors.Username, l.timeout)
	if err != nil {
		return fmt.Errorf("failed to locate username field: %w", err)
	}
	if err := username.Fill(email); err != nil {
		return fmt.Errorf("failed to fill username: %w", err)
	}

	passwordField, err := locator.Resolve(l.page, l.selectors.Password, l.timeout)
	if err != nil {
		return fmt.Errorf("failed to locate password field: %w", err)
	}
	if err := passwordField.Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}

	if err := passwordField.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}
	l.page.WaitForTimeout(1000)

	if strings.Contains(l.page.URL(), "/login") {
		button, err := locator.Resolve(l.page, l.selectors.LoginButton, l.timeout)
		if err != nil {
			return fmt.Errorf("failed to locate login button: %w", err)
		}
		if err := button.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)}); err != nil {
			return fmt.Errorf("failed to click login button: %w", err)
		}
	}

	l.browser.Settle(l.page, 1500*time.Millisecond)

	return l.waitForLoggedIn()
}

func (l *Login) waitForLoggedIn() error {
	deadline := time.Now().Add(l.timeout)
	for {
		if !strings.Contains(l.page.URL(), "/login") {
			l.logger.Info("login successful")
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("still on login page after %s", l.timeout)
		}
		l.page.WaitForTimeout(250)
	}
}
