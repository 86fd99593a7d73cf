package promo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
	"github.com/shopspring/decimal"
)

// Columns: code, active, discount_percent, min_order_amount, expiry_date,
// description.
const promoRange = "Promo_Codes!A:F"

// User-facing messages. "Invalid or inactive" deliberately covers both the
// unknown and the deactivated case so the endpoint does not leak which codes
// exist.
const (
	msgInvalidOrInactive = "Invalid or inactive promo code"
	msgExpired           = "This promo code has expired"
	msgUnableToValidate  = "Unable to validate promo code. Please try again."
)

// Result is the outcome of validating a code against a cart subtotal.
// Failures are business decisions, not errors; only Valid and the matching
// message fields are set on rejection.
type Result struct {
	Valid     bool
	PromoCode *PromoCode
	Discount  float64
	Error     string
}

// Service loads the promo table and validates codes.
type Service interface {
	ListPromoCodes(ctx context.Context) ([]PromoCode, error)
	Validate(ctx context.Context, code string, cartSubtotal float64) Result
}

type rangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]string, error)
}

type service struct {
	reader rangeReader
	logg   *logger.Logger
	now    func() time.Time
}

// NewService constructs the promo service over a spreadsheet reader.
func NewService(reader rangeReader, logg *logger.Logger) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("range reader required")
	}
	return &service{reader: reader, logg: logg, now: time.Now}, nil
}

// ListPromoCodes fetches and parses the Promo_Codes table. Rows without a
// code or with a discount outside [0,100] are dropped with a diagnostic.
func (s *service) ListPromoCodes(ctx context.Context) ([]PromoCode, error) {
	rows, err := s.reader.ReadRange(ctx, promoRange)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		s.warn(ctx, "promo codes sheet is empty or has only headers")
		return []PromoCode{}, nil
	}

	codes := make([]PromoCode, 0, len(rows)-1)
	for i, row := range rows[1:] {
		code, ok := parsePromoRow(row)
		if !ok {
			s.warn(s.withRow(ctx, i+2), "promo codes: row invalid, skipping")
			continue
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func parsePromoRow(row []string) (PromoCode, bool) {
	code := sheets.StringCell(sheets.Cell(row, 0), "")
	discountCell := sheets.StringCell(sheets.Cell(row, 2), "")
	if code == "" || discountCell == "" {
		return PromoCode{}, false
	}

	discount := sheets.FloatCell(discountCell, -1)
	if discount < 0 || discount > 100 {
		return PromoCode{}, false
	}

	p := PromoCode{
		Code:            strings.ToUpper(code),
		Active:          sheets.BoolCell(sheets.Cell(row, 1), false),
		DiscountPercent: discount,
		MinOrderAmount:  sheets.FloatCell(sheets.Cell(row, 3), 0),
		Description:     sheets.StringCell(sheets.Cell(row, 5), ""),
	}
	if expiry := sheets.StringCell(sheets.Cell(row, 4), ""); expiry != "" {
		p.ExpiryDate = &expiry
	}
	return p, true
}

// Validate evaluates a code against the cart subtotal. Short-circuits on the
// first failing rule; any fetch or parse failure folds into the generic
// retry message so an unreachable sheet can never apply a discount.
// The discount rounds half away from zero on the rupee.
func (s *service) Validate(ctx context.Context, code string, cartSubtotal float64) Result {
	codes, err := s.ListPromoCodes(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "promo validation fetch failed", err)
		}
		return Result{Valid: false, Error: msgUnableToValidate}
	}

	var match *PromoCode
	for i := range codes {
		if strings.EqualFold(codes[i].Code, code) {
			match = &codes[i]
			break
		}
	}

	if match == nil || !match.Active {
		return Result{Valid: false, Error: msgInvalidOrInactive}
	}

	if match.expiresBefore(s.now()) {
		return Result{Valid: false, Error: msgExpired}
	}

	if cartSubtotal < match.MinOrderAmount {
		return Result{Valid: false, Error: fmt.Sprintf("Minimum order amount is ₹%s",
			decimal.NewFromFloat(match.MinOrderAmount).String())}
	}

	discount := decimal.NewFromFloat(cartSubtotal).
		Mul(decimal.NewFromFloat(match.DiscountPercent)).
		Div(decimal.NewFromInt(100)).
		Round(0)

	return Result{
		Valid:     true,
		PromoCode: match,
		Discount:  discount.InexactFloat64(),
	}
}

func (s *service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}

func (s *service) withRow(ctx context.Context, rowNum int) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithField(ctx, "sheet_row", rowNum)
}
