package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewAssetNormalizes(t *testing.T) {
	t.Parallel()

	a := NewAsset(" petr4 ", " Petrobras ", "brl")
	assert.Equal(t, "PETR4", a.Symbol)
	assert.Equal(t, "Petrobras", a.Name)
	assert.Equal(t, "BRL", a.Currency)
	assert.Equal(t, "PETR4 (Petrobras)", a.String())
	assert.Equal(t, "GOOG", Asset{Symbol: "GOOG"}.String())
}

func TestAssetValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		asset   Asset
		wantErr string
	}{
		{"ok", Asset{Symbol: "GOOG", Currency: "USD"}, ""},
		{"no currency", Asset{Symbol: "GOOG"}, ""},
		{"lower case currency", Asset{Symbol: "GOOG", Currency: "eur"}, ""},
		{"missing symbol", Asset{Currency: "USD"}, "asset symbol is required"},
		{"bad currency", Asset{Symbol: "GOOG", Currency: "XXQ"}, "unknown currency"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.asset.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$200.00", Format(decimal.NewFromInt(200), "USD"))
	assert.Equal(t, "$1,234.50", Format(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "12.345", Format(decimal.RequireFromString("12.345"), ""))
	assert.Equal(t, "7", Format(decimal.NewFromInt(7), "NOPE"))
}

func TestFormatBeyondInt64(t *testing.T) {
	t.Parallel()

	huge := decimal.RequireFromString("1e30")
	assert.Equal(t, "1000000000000000000000000000000.00", Format(huge, "USD"))
	assert.Equal(t, "-1000000000000000000000000000000.00", Format(huge.Neg(), "USD"))

	// The largest amount that still fits goes through the currency display.
	assert.Equal(t, "$92,233,720,368,547,758.07", Format(decimal.RequireFromString("92233720368547758.07"), "USD"))
}
