package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryComestibles  Category = "Comestibles"
	CategoryBebidas      Category = "Bebidas"
	CategoryHigiene      Category = "Higiene"
	CategoryLimpieza     Category = "Limpieza"
	CategoryMedicamentos Category = "Medicamentos"
	CategoryOtros        Category = "Otros"
)

// Stock quantities emitted for the availability flag.
const (
	StockOut       = 0
	StockAvailable = 10
)

type ProductRecord struct {
	ID            int
	Name          string
	PriceUnidad   decimal.Decimal
	PriceCantidad decimal.Decimal
	PriceOferta   *decimal.Decimal
	Description   string
	Image         string
	Category      Category
	Stock         int
}

// SourceFile is one entry of the ordered input list.
type SourceFile struct {
	Name     string
	Category Category
}

type FileState string

const (
	FilePending        FileState = "pending"
	FileSkippedMissing FileState = "skipped-missing"
	FileProcessed      FileState = "processed"
	FileFailed         FileState = "failed"
)

type FileResult struct {
	Source  SourceFile
	Path    string
	State   FileState
	Records int
	Err     error
}

type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	Duration   time.Duration
	OutputPath string
	Files      []FileResult
	Total      int
}

// RunRow is a journal entry as read back from storage.
type RunRow struct {
	ID         int
	RunID      string
	StartedAt  string
	DurationMs int64
	OutputPath string
	Total      int
	Files      []RunFileRow
}

type RunFileRow struct {
	Name     string
	Category string
	State    string
	Records  int
	Error    *string
}
