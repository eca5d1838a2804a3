package locator

import (
	"github.com/playwright-community/playwright-go"
)

// Outcome is the tri-state result of a best-effort action. Callers that must
// never fail (overlay dismissal) collapse every value to a no-op; the states
// stay distinct so the behavior is observable in logs and tests.
type Outcome int

const (
	NotFound Outcome = iota
	Acted
	ActionFailed
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not-found"
	case Acted:
		return "acted"
	case ActionFailed:
		return "action-failed"
	default:
		return "unknown"
	}
}

// ClickFirstVisible resolves the target with a single pass and clicks the
// match if there is one. Absence and click failure are both reported through
// the Outcome, never as an error.
func ClickFirstVisible(page playwright.Page, target Target) Outcome {
	match, err := ResolveNow(page, target)
	if err != nil {
		return NotFound
	}

	if err := match.Click(); err != nil {
		return ActionFailed
	}

	return Acted
}
