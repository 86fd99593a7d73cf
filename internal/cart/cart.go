package cart

import "github.com/shopspring/decimal"

// Item is one cart line. Quantity is always positive; setting it to zero or
// below removes the line instead of storing it.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	OurPrice float64 `json:"ourPrice"`
	Quantity int     `json:"quantity"`
}

// AppliedPromo is a validation result bound to the cart. Recomputing it for
// the same promo table and subtotal is idempotent.
type AppliedPromo struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
	Discount        float64 `json:"discount"`
	Description     string  `json:"description"`
}

// Snapshot is the persisted cart state, one JSON document per cart token.
type Snapshot struct {
	Items        []Item        `json:"items"`
	AppliedPromo *AppliedPromo `json:"appliedPromo,omitempty"`
}

// View is a snapshot with its derived totals.
type View struct {
	Items        []Item        `json:"items"`
	AppliedPromo *AppliedPromo `json:"appliedPromo,omitempty"`
	Subtotal     float64       `json:"subtotal"`
	Discount     float64       `json:"discount"`
	Total        float64       `json:"total"`
	TotalItems   int           `json:"totalItems"`
}

// Subtotal sums unit price times quantity across the lines.
func (s Snapshot) Subtotal() float64 {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.OurPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal.InexactFloat64()
}

// TotalItems sums the quantities.
func (s Snapshot) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// NewView derives the totals. The final total is clamped at zero: a discount
// can never push the cart negative.
func NewView(s Snapshot) View {
	subtotal := decimal.NewFromFloat(s.Subtotal())
	discount := decimal.Zero
	if s.AppliedPromo != nil {
		discount = decimal.NewFromFloat(s.AppliedPromo.Discount)
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	items := s.Items
	if items == nil {
		items = []Item{}
	}

	return View{
		Items:        items,
		AppliedPromo: s.AppliedPromo,
		Subtotal:     subtotal.InexactFloat64(),
		Discount:     discount.InexactFloat64(),
		Total:        total.InexactFloat64(),
		TotalItems:   s.TotalItems(),
	}
}
