package e2e

import (
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/felixnica/megacart-e2e/internal/browser"
	"github.com/felixnica/megacart-e2e/internal/fixture"
)

const elementTimeout = 10 * time.Second

var (
	b       *browser.Browser
	site    *fixture.Server
	baseURL string
	logger  *slog.Logger
)

// TestMain owns the fixture site and the Playwright browser for all tests.
// Browsers are installed via:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium
func TestMain(m *testing.M) {
	godotenv.Load()

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	site = fixture.NewServer()
	srv := httptest.NewServer(site.Handler())
	baseURL = srv.URL

	var err error
	b, err = browser.New(browser.DefaultOptions())
	if err != nil {
		// The suite skips rather than fails when no browser is installed.
		fmt.Fprintf(os.Stderr, "e2e: browser unavailable, tests will be skipped: %v\n", err)
		b = nil
	}

	code := m.Run()

	if b != nil {
		b.Close()
	}
	srv.Close()

	os.Exit(code)
}

func requireBrowser(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	if b == nil {
		t.Skip("browser unavailable")
	}
}
