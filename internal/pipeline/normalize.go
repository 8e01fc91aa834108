package pipeline

import (
	"strings"

	"catalogo/internal"
	"catalogo/internal/util"
)

// Source sheet columns.
const (
	colImage         = "@imagen"
	colTitle         = "titulo"
	colPriceUnit     = "precioUnitario"
	colPriceBulk     = "precioCantidad"
	colPriceSale     = "precioOferta"
	colSubCategory   = "subCategoria"
	colStock         = "stock"
	defaultName      = "Sin nombre"
	outOfStockMarker = "sin stock"
)

// MapRow turns one sheet row into a catalog record with the given id.
func MapRow(row Row, category internal.Category, id int) internal.ProductRecord {
	record := internal.ProductRecord{
		ID:            id,
		Name:          util.FirstNonEmpty(text(row, colTitle), defaultName),
		PriceUnidad:   price(row, colPriceUnit).OrZero(),
		PriceCantidad: price(row, colPriceBulk).OrZero(),
		Description:   util.FirstNonEmpty(text(row, colSubCategory), string(category)),
		Image:         util.NormalizeImagePath(text(row, colImage)),
		Category:      category,
		Stock:         stockFlag(row),
	}

	// A sale price of zero means no active discount.
	if sale := price(row, colPriceSale).OrZero(); sale.IsPositive() {
		record.PriceOferta = util.DecimalPtr(sale)
	}
	return record
}

func text(row Row, column string) string {
	c, ok := row.Get(column)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func price(row Row, column string) util.ParsedPrice {
	c, ok := row.Get(column)
	if !ok {
		return util.ParsedPrice{Status: util.PriceEmpty}
	}
	if c.Numeric {
		return util.ParseNumericPrice(c.Value)
	}
	return util.ParsePrice(c.Value)
}

// stockFlag compares the cell untrimmed; "sin stock " with a stray space
// still counts as available.
func stockFlag(row Row) int {
	c, _ := row.Get(colStock)
	if strings.EqualFold(c.Value, outOfStockMarker) {
		return internal.StockOut
	}
	return internal.StockAvailable
}
