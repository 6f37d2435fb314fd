package checkout_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/checkout"
)

func TestNewInvoiceNumber_Format(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	num := checkout.NewInvoiceNumber("INV", at)

	parts := strings.Split(num, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "INV", parts[0])
	assert.Equal(t, "20260830", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2], "suffix is upper case")
}

func TestNewInvoiceNumber_Varies(t *testing.T) {
	at := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		num := checkout.NewInvoiceNumber("INV", at)
		assert.False(t, seen[num], "numbers for the same instant must differ")
		seen[num] = true
	}
}
