// Package cartparse turns raw cart-row markup into accepted line items. The
// cart surface renders purchased products and promotional placeholders with
// the same container shape, so acceptance is earned: a row needs a plausible
// amount of text, a name and a strictly positive line total, and the cart's
// own "N produse" label trims the candidate list before any row is read.
package cartparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/felixnica/megacart-e2e/internal/models"
	"github.com/felixnica/megacart-e2e/internal/price"
)

// NoLabelCap bounds how many structural candidates are processed when the
// cart does not report its own item count.
const NoLabelCap = 10

var countLabelPattern = regexp.MustCompile(`^(\d+)\s+produse?$`)

type RowParser struct {
	locale        price.Locale
	nameSelectors []string
	minTextLen    int
	maxNameLen    int
	leadingName   *regexp.Regexp
	lineTotal     *regexp.Regexp
	quantity      string
}

func NewRowParser(locale price.Locale) *RowParser {
	return &RowParser{
		locale:        locale,
		nameSelectors: []string{"h3", "h4", "a", `[class*="name"]`, `[class*="title"]`},
		minTextLen:    10,
		maxNameLen:    50,
		leadingName:   regexp.MustCompile(`^([A-Za-zĂÂÎȘȚăâîșț\s]+)`),
		// Line totals render as minor units glued to the currency word and a
		// trailing product-code digit run, e.g. "989Lei24085" = 9.89 lei.
		lineTotal: regexp.MustCompile(`(\d{3,4})` + locale.CurrencyWord + `\d{5}`),
		quantity:  `input[type="number"], input[role="spinbutton"]`,
	}
}

// ParseRow extracts a line item from one candidate row's HTML. The boolean
// reports acceptance; rejected rows are noise (promotional placeholders,
// spacer rows), not errors.
func (p *RowParser) ParseRow(html string) (models.CartLineItem, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.CartLineItem{}, false
	}

	rawText := strings.TrimSpace(doc.Text())
	if len(rawText) < p.minTextLen {
		return models.CartLineItem{}, false
	}

	item := models.CartLineItem{
		Name:      p.extractName(doc, rawText),
		Quantity:  p.extractQuantity(doc),
		LineTotal: p.extractLineTotal(doc, rawText),
	}

	if item.Name == "" || item.LineTotal <= 0 {
		return models.CartLineItem{}, false
	}

	return item, true
}

func (p *RowParser) extractName(doc *goquery.Document, rawText string) string {
	for _, selector := range p.nameSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(text) > 3 {
			return text
		}
	}

	if match := p.leadingName.FindStringSubmatch(rawText); match != nil {
		if name := strings.TrimSpace(match[1]); name != "" {
			return name
		}
	}

	if runes := []rune(rawText); len(runes) > p.maxNameLen {
		return string(runes[:p.maxNameLen])
	}
	return rawText
}

func (p *RowParser) extractQuantity(doc *goquery.Document) int {
	value, exists := doc.Find(p.quantity).First().Attr("value")
	if !exists {
		return 1
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)

	qty, err := strconv.Atoi(digits)
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}

func (p *RowParser) extractLineTotal(doc *goquery.Document, rawText string) float64 {
	// Structured amount source wins when the markup carries one.
	if value, exists := doc.Find("[data-line-total]").First().Attr("data-line-total"); exists {
		if minor, err := strconv.Atoi(value); err == nil && minor > 0 {
			return p.locale.FromMinorUnits(minor)
		}
	}

	compact := strings.Join(strings.Fields(rawText), "")
	match := p.lineTotal.FindStringSubmatch(compact)
	if match == nil {
		return 0
	}

	minor, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return p.locale.FromMinorUnits(minor)
}

// ParseCountLabel reads the cart's self-reported item count from an
// "N produse" label.
func ParseCountLabel(text string) (int, bool) {
	match := countLabelPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, false
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BoundedCandidates applies the disambiguation rule to the raw structural
// match count. The label is authoritative for trimming, never for expanding:
// real cart rows precede promotional content in document order, so a label
// smaller than the raw count means only the first label-many rows are real.
func BoundedCandidates(raw, label int, hasLabel bool) int {
	if hasLabel {
		if label < raw {
			return label
		}
		return raw
	}

	if raw > NoLabelCap {
		return NoLabelCap
	}
	return raw
}

// NameMatches reports whether a cart row plausibly shows the given product.
// Cart names get truncated and reworded, so matching is a case-insensitive
// substring check on the first few characters, in both directions.
func NameMatches(cartName, productName string) bool {
	cart := strings.ToLower(strings.TrimSpace(cartName))
	product := strings.ToLower(strings.TrimSpace(productName))
	if cart == "" || product == "" {
		return false
	}

	return strings.Contains(cart, prefix(product, 6)) ||
		strings.Contains(product, prefix(cart, 6))
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CheckTotal reports whether a displayed total agrees with the sum of line
// totals within the currency rounding tolerance.
func CheckTotal(summary models.CartSummary, tolerance float64) error {
	diff := summary.ComputedTotal() - summary.DisplayedTotal
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance {
		return fmt.Errorf("displayed total %.2f differs from line-item sum %.2f by more than %.2f",
			summary.DisplayedTotal, summary.ComputedTotal(), tolerance)
	}
	return nil
}
