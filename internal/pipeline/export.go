package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"catalogo/internal"
)

// TypeScriptTarget describes the generated data module.
type TypeScriptTarget struct {
	Path        string
	TypesImport string
	ExportName  string
}

// tsProduct mirrors the front-end Product interface, field order included.
type tsProduct struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	PriceUnidad   json.Number  `json:"priceUnidad"`
	PriceCantidad json.Number  `json:"priceCantidad"`
	PriceOferta   *json.Number `json:"priceOferta"`
	Description   string       `json:"description"`
	Image         string       `json:"image"`
	Category      string       `json:"category"`
	Stock         int          `json:"stock"`
}

func toTSProduct(p internal.ProductRecord) tsProduct {
	out := tsProduct{
		ID:            p.ID,
		Name:          p.Name,
		PriceUnidad:   number(p.PriceUnidad),
		PriceCantidad: number(p.PriceCantidad),
		Description:   p.Description,
		Image:         p.Image,
		Category:      string(p.Category),
		Stock:         p.Stock,
	}
	if p.PriceOferta != nil {
		n := number(*p.PriceOferta)
		out.PriceOferta = &n
	}
	return out
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// RenderTypeScript writes the module source: the Product import and one
// exported array constant, pretty printed with non-ASCII kept literal.
func RenderTypeScript(w io.Writer, records []internal.ProductRecord, target TypeScriptTarget) error {
	items := make([]tsProduct, 0, len(records))
	for _, p := range records {
		items = append(items, toTSProduct(p))
	}

	body := bytes.NewBuffer(nil)
	enc := json.NewEncoder(body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode products: %w", err)
	}

	_, err := fmt.Fprintf(w, "import { Product } from '%s';\n\nexport const %s: Product[] = %s;\n",
		target.TypesImport, target.ExportName, bytes.TrimRight(body.Bytes(), "\n"))
	return err
}

// WriteTypeScript renders the module to target.Path, creating parent dirs.
func WriteTypeScript(records []internal.ProductRecord, target TypeScriptTarget) error {
	buf := bytes.NewBuffer(nil)
	if err := RenderTypeScript(buf, records, target); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target.Path, buf.Bytes(), 0o644)
}

// ExportRecordsToXLSX writes the catalog as a review sheet.
func ExportRecordsToXLSX(records []internal.ProductRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{
		"id", "name", "priceUnidad", "priceCantidad", "priceOferta",
		"description", "image", "category", "stock",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, p := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, p.ID)
		set(2, p.Name)
		set(3, p.PriceUnidad.InexactFloat64())
		set(4, p.PriceCantidad.InexactFloat64())
		set(5, derefDecimal(p.PriceOferta))
		set(6, p.Description)
		set(7, p.Image)
		set(8, string(p.Category))
		set(9, p.Stock)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefDecimal(v *decimal.Decimal) any {
	if v == nil {
		return ""
	}
	return v.InexactFloat64()
}
