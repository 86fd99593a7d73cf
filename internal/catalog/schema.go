package catalog

import (
	"strconv"

	"github.com/chocovilla/chocovilla-backend/pkg/drive"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
)

// The Products sheet has shipped in three column layouts, told apart only by
// width. Ranges are probed widest-first; the upstream rejects a range wider
// than the sheet.
const (
	rangeFull    = "Products!A:L" // + display_order, show_on_home
	rangeDisplay = "Products!A:K" // + display_order
	rangeFlags   = "Products!A:J" // + limited_stock, in_stock
	rangeLegacy  = "Products!A:I" // id..best_seller, in_stock
)

var productRanges = []string{rangeFull, rangeDisplay, rangeFlags, rangeLegacy}

type schemaVersion int

const (
	schemaLegacy schemaVersion = iota
	schemaFlags
	schemaFull
)

func (v schemaVersion) String() string {
	switch v {
	case schemaFull:
		return "full"
	case schemaFlags:
		return "flags"
	default:
		return "legacy"
	}
}

// schemaForWidth maps a column count onto the layout it can satisfy.
func schemaForWidth(width int) schemaVersion {
	switch {
	case width >= 12:
		return schemaFull
	case width >= 10:
		return schemaFlags
	default:
		return schemaLegacy
	}
}

// rowDiagnostic reports a skipped or suspicious row; rowNum is 1-based and
// counts the header, matching what an editor sees in the sheet UI.
type rowDiagnostic struct {
	rowNum int
	reason string
}

// parseProductRow maps one data row under the table's resolved schema. A row
// narrower than the resolved layout is mapped under the widest layout its own
// width supports and flagged, rather than silently mis-mapping columns.
// Missing id, name, or an unparseable our_price drops the row.
func parseProductRow(row []string, tableSchema schemaVersion, rowNum int) (Product, []rowDiagnostic, bool) {
	var diags []rowDiagnostic

	rowSchema := schemaForWidth(len(row))
	if rowSchema > tableSchema {
		rowSchema = tableSchema
	}
	if rowSchema < tableSchema {
		diags = append(diags, rowDiagnostic{rowNum, "row narrower than resolved schema, mapped as " + rowSchema.String()})
	}

	id := sheets.StringCell(sheets.Cell(row, 0), "")
	name := sheets.StringCell(sheets.Cell(row, 1), "")
	ourPriceCell := sheets.Cell(row, 4)
	if id == "" || name == "" || sheets.StringCell(ourPriceCell, "") == "" {
		diags = append(diags, rowDiagnostic{rowNum, "missing required fields"})
		return Product{}, diags, false
	}
	ourPrice, err := strconv.ParseFloat(sheets.StringCell(ourPriceCell, ""), 64)
	if err != nil {
		diags = append(diags, rowDiagnostic{rowNum, "invalid our_price " + strconv.Quote(ourPriceCell)})
		return Product{}, diags, false
	}

	p := Product{
		ID:           id,
		Name:         name,
		Description:  sheets.StringCell(sheets.Cell(row, 2), ""),
		MarketPrice:  sheets.FloatCell(sheets.Cell(row, 3), 0),
		OurPrice:     ourPrice,
		ImageURL:     drive.NormalizeImageURL(sheets.StringCell(sheets.Cell(row, 5), "")),
		Category:     sheets.StringCell(sheets.Cell(row, 6), defaultCategory),
		BestSeller:   sheets.BoolCell(sheets.Cell(row, 7), false),
		LimitedStock: false,
		InStock:      true,
		DisplayOrder: defaultDisplayOrder,
		ShowOnHome:   false,
	}

	switch rowSchema {
	case schemaFull:
		p.LimitedStock = sheets.BoolCell(sheets.Cell(row, 8), false)
		p.InStock = sheets.BoolCell(sheets.Cell(row, 9), true)
		p.DisplayOrder = sheets.IntCell(sheets.Cell(row, 10), defaultDisplayOrder)
		p.ShowOnHome = sheets.BoolCell(sheets.Cell(row, 11), false)
	case schemaFlags:
		p.LimitedStock = sheets.BoolCell(sheets.Cell(row, 8), false)
		p.InStock = sheets.BoolCell(sheets.Cell(row, 9), true)
	default:
		p.InStock = sheets.BoolCell(sheets.Cell(row, 8), true)
	}

	return p, diags, true
}
