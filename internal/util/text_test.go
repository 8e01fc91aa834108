package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "@imagen", NormalizeColumn("\ufeff@imagen"))
	assert.Equal(t, "titulo", NormalizeColumn("  titulo "))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "Gaseosas", FirstNonEmpty("  ", "", " Gaseosas ", "Bebidas"))
	assert.Equal(t, "", FirstNonEmpty("", " "))
}
