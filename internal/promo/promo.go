package promo

import (
	"time"
)

// PromoCode is one row of the Promo_Codes sheet. Codes are normalized to
// uppercase at parse time and matched case-insensitively.
type PromoCode struct {
	Code            string  `json:"code"`
	Active          bool    `json:"active"`
	DiscountPercent float64 `json:"discountPercent"`
	MinOrderAmount  float64 `json:"minOrderAmount"`
	ExpiryDate      *string `json:"expiryDate"` // YYYY-MM-DD, nil = never expires
	Description     string  `json:"description"`
}

const expiryLayout = "2006-01-02"

// expiresBefore reports whether the code's expiry date falls strictly before
// the given day. Comparison is date-only: a code expiring today is still
// valid. Unparseable dates never expire a code.
func (p PromoCode) expiresBefore(today time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	expiry, err := time.ParseInLocation(expiryLayout, *p.ExpiryDate, today.Location())
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return expiry.Before(day)
}
