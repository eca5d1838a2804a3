package overlay

import (
	"log/slog"
	"testing"
	"time"
)

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()

	if len(categories) != 2 {
		t.Fatalf("expected 2 overlay categories, got %d", len(categories))
	}

	consent := categories[0]
	if consent.Name != "cookie-consent" {
		t.Errorf("expected first category cookie-consent, got %s", consent.Name)
	}

	// The broad /accept/i pattern must come first so short-circuiting picks
	// it before the narrower variants.
	if !consent.Patterns[0].MatchString("Acceptă toate") {
		t.Error("first consent pattern should match 'Acceptă toate'")
	}
	if !consent.Patterns[0].MatchString("Accept all cookies") {
		t.Error("first consent pattern should match 'Accept all cookies'")
	}

	location := categories[1]
	if !location.Patterns[0].MatchString("Închide") {
		t.Error("first location pattern should match 'Închide'")
	}

	okOnly := location.Patterns[2]
	if !okOnly.MatchString("OK") {
		t.Error("ok pattern should match 'OK'")
	}
	if okOnly.MatchString("BOOK NOW") {
		t.Error("ok pattern must be anchored, matched 'BOOK NOW'")
	}
}

func TestNewDismisserDefaults(t *testing.T) {
	d := NewDismisser(nil, 0, slog.Default())

	if len(d.categories) != 2 {
		t.Errorf("nil categories should fall back to defaults, got %d", len(d.categories))
	}

	if d.clickWait != defaultClickWait {
		t.Errorf("zero click wait should fall back to %v, got %v", defaultClickWait, d.clickWait)
	}
}

func TestNewDismisserClickWait(t *testing.T) {
	d := NewDismisser(nil, 150*time.Millisecond, slog.Default())

	if d.clickWait != 150*time.Millisecond {
		t.Errorf("expected configured click wait 150ms, got %v", d.clickWait)
	}
}
