package stats

import (
	"context"
	"fmt"

	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
)

// Columns: happy_customers, total_orders_till_now, cities_served.
const statsRange = "Statistics!A:C"

// Statistics are decorative landing-page counters. They never surface an
// error: any failure falls back to the static defaults below, each field
// independently.
type Statistics struct {
	HappyCustomers int `json:"happyCustomers"`
	TotalOrders    int `json:"totalOrders"`
	CitiesServed   int `json:"citiesServed"`
}

const (
	defaultHappyCustomers = 1205
	defaultTotalOrders    = 5000
	defaultCitiesServed   = 42
)

func defaults() Statistics {
	return Statistics{
		HappyCustomers: defaultHappyCustomers,
		TotalOrders:    defaultTotalOrders,
		CitiesServed:   defaultCitiesServed,
	}
}

// Service loads the statistics row.
type Service interface {
	GetStatistics(ctx context.Context) Statistics
}

type rangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]string, error)
}

type service struct {
	reader rangeReader
	logg   *logger.Logger
}

func NewService(reader rangeReader, logg *logger.Logger) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("range reader required")
	}
	return &service{reader: reader, logg: logg}, nil
}

// GetStatistics reads the first data row. Absent or unparseable cells take
// their own default without disturbing the others.
func (s *service) GetStatistics(ctx context.Context) Statistics {
	rows, err := s.reader.ReadRange(ctx, statsRange)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "statistics fetch failed, using defaults", err)
		}
		return defaults()
	}

	if len(rows) <= 1 {
		if s.logg != nil {
			s.logg.Warn(ctx, "statistics sheet is empty or has only headers, using defaults")
		}
		return defaults()
	}

	row := rows[1]
	return Statistics{
		HappyCustomers: nonNegative(sheets.IntCell(sheets.Cell(row, 0), defaultHappyCustomers), defaultHappyCustomers),
		TotalOrders:    nonNegative(sheets.IntCell(sheets.Cell(row, 1), defaultTotalOrders), defaultTotalOrders),
		CitiesServed:   nonNegative(sheets.IntCell(sheets.Cell(row, 2), defaultCitiesServed), defaultCitiesServed),
	}
}

func nonNegative(value, fallback int) int {
	if value < 0 {
		return fallback
	}
	return value
}
