package models

import "strings"

// ProductSummary is what a listing card tells us about a product before it
// goes into the cart.
type ProductSummary struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartLineItem is one accepted row of the cart: promotional decoys that share
// the row markup never make it into this type.
type CartLineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartSummary struct {
	LineItems      []CartLineItem `json:"line_items"`
	DisplayedTotal float64        `json:"displayed_total"`
}

// IsValid rejects implausible listing extractions before they enter the
// verification path: blank names and non-positive prices.
func (p *ProductSummary) IsValid() bool {
	return strings.TrimSpace(p.Name) != "" && p.Price > 0
}

func (li *CartLineItem) IsValid() bool {
	return li.Name != "" && li.Quantity >= 1 && li.LineTotal > 0
}

// ComputedTotal sums the line totals; the orchestrator compares it against
// DisplayedTotal with a rounding tolerance.
func (c *CartSummary) ComputedTotal() float64 {
	var sum float64
	for _, li := range c.LineItems {
		sum += li.LineTotal
	}
	return sum
}

// TotalQuantity sums quantities across line items.
func (c *CartSummary) TotalQuantity() int {
	var n int
	for _, li := range c.LineItems {
		n += li.Quantity
	}
	return n
}
