package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Site    SiteConfig
	Browser BrowserConfig
	Scraper ScraperConfig
	Login   LoginConfig
	Logging LoggingConfig
}

type SiteConfig struct {
	BaseURL     string
	CheckoutURL string
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
	UserAgent      string
}

type ScraperConfig struct {
	SettleDelay     time.Duration
	NetworkIdleWait time.Duration
	ElementTimeout  time.Duration
	OverlayDelay    time.Duration
}

type LoginConfig struct {
	Email    string
	Password string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Site: SiteConfig{
			BaseURL:     getEnvOrDefault("SITE_BASE_URL", "https://mega-image.ro"),
			CheckoutURL: getEnvOrDefault("SITE_CHECKOUT_URL", "/checkout"),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1366),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 900),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "ro-RO,ro;q=0.9,en;q=0.8"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Europe/Bucharest"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "ro-RO"),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", defaultUserAgent),
		},
		Scraper: ScraperConfig{
			SettleDelay:     getDurationOrDefault("SCRAPER_SETTLE_DELAY", 250*time.Millisecond),
			NetworkIdleWait: getDurationOrDefault("SCRAPER_NETWORK_IDLE_WAIT", 3*time.Second),
			ElementTimeout:  getDurationOrDefault("SCRAPER_ELEMENT_TIMEOUT", 10*time.Second),
			OverlayDelay:    getDurationOrDefault("SCRAPER_OVERLAY_DELAY", 300*time.Millisecond),
		},
		Login: LoginConfig{
			Email:    getEnvOrDefault("LOGIN_EMAIL", ""),
			Password: getEnvOrDefault("LOGIN_PASSWORD", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("SITE_BASE_URL must not be empty")
	}

	if c.Browser.ViewportWidth < 1 || c.Browser.ViewportHeight < 1 {
		return fmt.Errorf("viewport dimensions must be positive")
	}

	if c.Scraper.ElementTimeout < time.Second {
		return fmt.Errorf("SCRAPER_ELEMENT_TIMEOUT must be at least 1s")
	}

	return nil
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
