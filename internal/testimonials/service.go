package testimonials

import (
	"context"
	"fmt"
	"strings"

	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
)

// Columns: name, message, rating, city, featured.
const testimonialsRange = "Testimonials!A:E"

// Testimonial is one featured review row. Non-featured rows are dropped at
// parse time rather than carried with a flag.
type Testimonial struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
	City    string `json:"city"`
}

// Service loads featured testimonials.
type Service interface {
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
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

// ListTestimonials returns featured rows with a valid name, message, and a
// rating between 1 and 5.
func (s *service) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	rows, err := s.reader.ReadRange(ctx, testimonialsRange)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		s.warn(ctx, "testimonials sheet is empty or has only headers")
		return []Testimonial{}, nil
	}

	testimonials := make([]Testimonial, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// The featured column is a literal yes/no toggle, not a boolean cell.
		if strings.ToLower(strings.TrimSpace(sheets.Cell(row, 4))) != "yes" {
			continue
		}

		name := sheets.StringCell(sheets.Cell(row, 0), "")
		message := sheets.StringCell(sheets.Cell(row, 1), "")
		ratingCell := sheets.StringCell(sheets.Cell(row, 2), "")
		if name == "" || message == "" || ratingCell == "" {
			s.warn(s.withRow(ctx, i+2), "testimonials: missing required fields, skipping")
			continue
		}

		rating := sheets.IntCell(ratingCell, 0)
		if rating < 1 || rating > 5 {
			s.warn(s.withRow(ctx, i+2), "testimonials: invalid rating "+ratingCell+", skipping")
			continue
		}

		testimonials = append(testimonials, Testimonial{
			Name:    name,
			Message: message,
			Rating:  rating,
			City:    sheets.StringCell(sheets.Cell(row, 3), ""),
		})
	}
	return testimonials, nil
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
