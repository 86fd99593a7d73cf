package sheets

import (
	"strconv"
	"strings"
)

// Cell returns the value at idx, or empty when the row is too short. Sheets
// omit trailing empty cells, so rows are routinely narrower than the range.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// BoolCell coerces a cell to a boolean. The literals "true", "yes" and "1"
// (case-insensitive, whitespace-trimmed) are true; anything else, including
// an empty cell, yields the field's fallback.
func BoolCell(cell string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "yes", "1":
		return true
	default:
		return fallback
	}
}

// FloatCell parses a cell as a float, yielding the fallback when empty or
// unparseable.
func FloatCell(cell string, fallback float64) float64 {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return value
}

// IntCell parses a cell as an integer, yielding the fallback when empty,
// fractional, or unparseable.
func IntCell(cell string, fallback int) int {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return value
}

// StringCell trims a cell, substituting the fallback when empty.
func StringCell(cell string, fallback string) string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
