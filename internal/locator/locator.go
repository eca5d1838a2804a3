// Package locator resolves semantic UI targets ("search input", "add to cart
// button") against a live page through an ordered list of independent
// resolution strategies. Resolution short-circuits on the first strategy that
// yields a visible match; an element attached to the DOM but not visible
// counts as absent.
package locator

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

var ErrNotFound = errors.New("element not found")

type Kind int

const (
	KindCSS Kind = iota
	KindRole
	KindPlaceholder
	KindText
)

// Strategy is one way of finding an element. Exactly one of the selector or
// pattern fields is meaningful per kind.
type Strategy struct {
	Kind     Kind
	Selector string
	Role     playwright.AriaRole
	Pattern  *regexp.Regexp
}

func CSS(selector string) Strategy {
	return Strategy{Kind: KindCSS, Selector: selector}
}

func Role(role playwright.AriaRole, name *regexp.Regexp) Strategy {
	return Strategy{Kind: KindRole, Role: role, Pattern: name}
}

func Placeholder(pattern *regexp.Regexp) Strategy {
	return Strategy{Kind: KindPlaceholder, Pattern: pattern}
}

func Text(pattern *regexp.Regexp) Strategy {
	return Strategy{Kind: KindText, Pattern: pattern}
}

func (s Strategy) String() string {
	switch s.Kind {
	case KindCSS:
		return fmt.Sprintf("css(%s)", s.Selector)
	case KindRole:
		return fmt.Sprintf("role(%s, %v)", s.Role, s.Pattern)
	case KindPlaceholder:
		return fmt.Sprintf("placeholder(%v)", s.Pattern)
	case KindText:
		return fmt.Sprintf("text(%v)", s.Pattern)
	default:
		return "unknown"
	}
}

// Target is a semantic element description: a human-readable name for error
// messages plus the priority-ordered strategies that can find it.
type Target struct {
	Name       string
	Strategies []Strategy
}

func (t Target) build(page playwright.Page, s Strategy) playwright.Locator {
	switch s.Kind {
	case KindCSS:
		return page.Locator(s.Selector)
	case KindRole:
		opts := playwright.PageGetByRoleOptions{}
		if s.Pattern != nil {
			opts.Name = s.Pattern
		}
		return page.GetByRole(s.Role, opts)
	case KindPlaceholder:
		return page.GetByPlaceholder(s.Pattern)
	case KindText:
		return page.GetByText(s.Pattern)
	default:
		return page.Locator(s.Selector)
	}
}

const pollInterval = 100 * time.Millisecond

// Resolve evaluates the target's strategies in priority order and returns the
// first visible match of the first strategy that has one. It polls until the
// bounded wait elapses, then reports ErrNotFound; callers decide whether that
// is fatal. No deduplication happens across strategies since resolution
// short-circuits.
func Resolve(page playwright.Page, target Target, timeout time.Duration) (playwright.Locator, error) {
	deadline := time.Now().Add(timeout)

	for {
		for _, strategy := range target.Strategies {
			first := target.build(page, strategy).First()
			visible, err := first.IsVisible()
			if err != nil {
				continue
			}
			if visible {
				return first, nil
			}
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s (tried %d strategies in %s)",
				ErrNotFound, target.Name, len(target.Strategies), timeout)
		}
		time.Sleep(pollInterval)
	}
}

// ResolveNow is a single-pass Resolve for optional elements where waiting
// would slow the happy path down.
func ResolveNow(page playwright.Page, target Target) (playwright.Locator, error) {
	for _, strategy := range target.Strategies {
		first := target.build(page, strategy).First()
		visible, err := first.IsVisible()
		if err != nil {
			continue
		}
		if visible {
			return first, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, target.Name)
}
