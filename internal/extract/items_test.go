package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractItemsTableRows(t *testing.T) {
	e := New(Options{})

	t.Run("GST labeled row yields exactly one item", func(t *testing.T) {
		items := e.extractItems("Charger GST 5% 10 10 105.00")
		require.Len(t, items, 1)
		assert.Equal(t, "Charger", items[0].Description)
		assert.Equal(t, 10.0, items[0].Quantity)
		assert.Equal(t, 10.0, items[0].Rate)
		assert.Equal(t, 5.0, items[0].TaxPct)
		assert.Equal(t, 105.0, items[0].Amount)
	})

	t.Run("mixed row shapes without double counting", func(t *testing.T) {
		items := e.extractItems("9876543210 Charger GST 5% 1 100 105.00 Back Cover 12% 2 50 112.00")
		require.Len(t, items, 2)
		assert.Equal(t, "Charger", items[0].Description)
		assert.Equal(t, "Back Cover", items[1].Description)
		assert.Equal(t, 12.0, items[1].TaxPct)
		assert.Equal(t, 112.0, items[1].Amount)
	})

	t.Run("zero amount is derived from quantity rate and tax", func(t *testing.T) {
		items := e.extractItems("Charger GST 5% 2 100 0")
		require.Len(t, items, 1)
		assert.InDelta(t, 210.0, items[0].Amount, 1e-9)
	})

	t.Run("header keyword rows are rejected", func(t *testing.T) {
		items := e.extractItems("Calculations 10 10 105.00")
		require.Len(t, items, 1)
		assert.Equal(t, "Item 1", items[0].Description)
	})
}

func TestExtractItemsCatalog(t *testing.T) {
	e := New(Options{})

	t.Run("known item picks up its catalog tax rate", func(t *testing.T) {
		items := e.extractItems("Power Bank 2 1500 3540")
		require.Len(t, items, 1)
		assert.Equal(t, "Power Bank", items[0].Description)
		assert.Equal(t, 2.0, items[0].Quantity)
		assert.Equal(t, 1500.0, items[0].Rate)
		assert.Equal(t, 18.0, items[0].TaxPct)
		assert.Equal(t, 3540.0, items[0].Amount)
	})

	t.Run("unknown names fall through", func(t *testing.T) {
		items := e.extractItems("Gadget Widget nothing here")
		assert.Empty(t, items)
	})
}

func TestExtractItemsGenericTriples(t *testing.T) {
	e := New(Options{})

	t.Run("synthesized descriptions with the default tax rate", func(t *testing.T) {
		items := e.extractItems("1 10 10.50 2 20 42.00")
		require.Len(t, items, 2)
		assert.Equal(t, "Item 1", items[0].Description)
		assert.Equal(t, "Item 2", items[1].Description)
		assert.Equal(t, 5.0, items[0].TaxPct)
		assert.Equal(t, 10.5, items[0].Amount)
	})

	t.Run("capped at the configured maximum", func(t *testing.T) {
		text := ""
		for i := 1; i <= 7; i++ {
			text += fmt.Sprintf("%d %d0 %d4.50 ", i, i, i)
		}
		items := e.extractItems(text)
		assert.Len(t, items, 5)
	})

	t.Run("integer amounts are accepted", func(t *testing.T) {
		items := e.extractItems("10 10 105")
		require.Len(t, items, 1)
		assert.Equal(t, "Item 1", items[0].Description)
		assert.Equal(t, 105.0, items[0].Amount)
	})

	t.Run("named row with an integer amount falls to the generic tier", func(t *testing.T) {
		items := e.extractItems("Widget Pro 2 150 300")
		require.Len(t, items, 1)
		assert.Equal(t, "Item 1", items[0].Description)
		assert.Equal(t, 2.0, items[0].Quantity)
		assert.Equal(t, 150.0, items[0].Rate)
		assert.Equal(t, 300.0, items[0].Amount)
	})

	t.Run("bare digit runs are not items", func(t *testing.T) {
		items := e.extractItems("pincode 411001 phone 9876543210")
		assert.Empty(t, items)
	})
}

func TestBuildItem(t *testing.T) {
	tests := []struct {
		name string
		desc string
		qty  float64
		rate float64
		ok   bool
	}{
		{"valid item", "Charger", 1, 100, true},
		{"zero quantity", "Charger", 0, 100, false},
		{"zero rate", "Charger", 1, 0, false},
		{"trivial description", "ab", 1, 100, false},
		{"keyword description", "Subtotal", 1, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := buildItem(tt.desc, tt.qty, tt.rate, 5, 0)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Back Cover", cleanDescription("  Back--Cover! "))
	assert.Equal(t, "Charger", cleanDescription("Charger"))
}
