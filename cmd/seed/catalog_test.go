package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	require.NoError(t, validateCatalog(defaultCatalog))
}

func TestValidateCatalogRejectsBadItems(t *testing.T) {
	price := decimal.RequireFromString("1.00")
	tests := map[string][]catalogItem{
		"empty name": {{Name: " ", Price: price}},
		"duplicate":  {{Name: "Fresitas", Price: price}, {Name: "Fresitas", Price: price}},
		"zero price": {{Name: "Fresitas", Price: decimal.Zero}},
	}
	for name, items := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, validateCatalog(items))
		})
	}
}

func TestPendingSkipsStoredNames(t *testing.T) {
	items := []catalogItem{{Name: "Fresitas"}, {Name: "Sandias"}, {Name: "Cocacolitas"}}
	out := pending(items, map[string]struct{}{"Sandias": {}})
	assert.Equal(t, []string{"Fresitas", "Cocacolitas"}, names(out))
	assert.Empty(t, pending(items, map[string]struct{}{"Fresitas": {}, "Sandias": {}, "Cocacolitas": {}}))
}
