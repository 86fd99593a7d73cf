// Package whatsapp composes wa.me deep links carrying a pre-filled order or
// inquiry message. The link is a one-way handoff: nothing here waits on or
// confirms delivery.
package whatsapp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// OrderItem is one cart line summarized into the outbound message.
type OrderItem struct {
	Name     string
	Quantity int
	Amount   float64
}

// OrderPromo describes an applied promo line, when present.
type OrderPromo struct {
	Code            string
	DiscountPercent float64
	Discount        float64
}

// Composer builds deep links for a single destination phone number.
type Composer struct {
	phone string
}

func NewComposer(phone string) *Composer {
	return &Composer{phone: strings.TrimSpace(phone)}
}

// OrderLink renders the full cart summary message.
func (c *Composer) OrderLink(items []OrderItem, subtotal float64, promo *OrderPromo, total float64) string {
	var b strings.Builder
	b.WriteString("Hello ChocoVilla 👋\nI would like to place an order:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s × %d – ₹%s\n", item.Name, item.Quantity, formatAmount(item.Amount))
	}
	fmt.Fprintf(&b, "\nSubtotal: ₹%s", formatAmount(subtotal))
	if promo != nil {
		fmt.Fprintf(&b, "\nPromo Code: %s (%s%% OFF)", promo.Code, formatAmount(promo.DiscountPercent))
		fmt.Fprintf(&b, "\nDiscount: – ₹%s", formatAmount(promo.Discount))
	}
	fmt.Fprintf(&b, "\nFinal Total: ₹%s\n\nPlease confirm availability and delivery details.", formatAmount(total))
	return c.link(b.String())
}

// InquiryLink renders the single-product interest message.
func (c *Composer) InquiryLink(productName string, price float64) string {
	msg := fmt.Sprintf("Hello ChocoVilla, I am interested in %s priced at ₹%s. Please share details.",
		productName, formatAmount(price))
	return c.link(msg)
}

func (c *Composer) link(message string) string {
	// QueryEscape renders spaces as "+", which WhatsApp shows literally.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.phone, encoded)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
