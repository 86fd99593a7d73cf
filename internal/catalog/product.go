package catalog

// Product is one row of the Products sheet after coercion and image
// normalization. Records are rebuilt on every fetch; nothing here persists.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	MarketPrice  float64 `json:"marketPrice"`
	OurPrice     float64 `json:"ourPrice"`
	ImageURL     string  `json:"imageUrl"`
	Category     string  `json:"category"`
	BestSeller   bool    `json:"bestSeller"`
	LimitedStock bool    `json:"limitedStock"`
	InStock      bool    `json:"inStock"`
	DisplayOrder int     `json:"displayOrder"`
	ShowOnHome   bool    `json:"showOnHome"`
}

const (
	defaultCategory     = "Uncategorized"
	defaultDisplayOrder = 999
)
