package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeColumn trims a header cell and drops a UTF-8 byte order mark.
func NormalizeColumn(input string) string {
	return strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func StringPtr(v string) *string {
	return &v
}

func DecimalPtr(v decimal.Decimal) *decimal.Decimal {
	return &v
}
