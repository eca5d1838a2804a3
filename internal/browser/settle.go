package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Settle brings the page to a state where extraction is reliable: document
// parsed, then network quiescence if it arrives within the bound, then a
// fixed tail delay for client-side rendering. A page that never goes
// network-idle is normal on sites with long-polling, so nothing here is an
// error.
func (b *Browser) Settle(page playwright.Page, extra time.Duration) {
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		b.logger.Debug("domcontentloaded wait failed", "error", err)
	}

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(b.opts.NetworkIdleWait.Milliseconds())),
	}); err != nil {
		b.logger.Debug("network did not go idle, continuing", "error", err)
	}

	delay := extra
	if delay <= 0 {
		delay = b.opts.SettleDelay
	}
	page.WaitForTimeout(float64(delay.Milliseconds()))
}
