package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxRateStore_LatestEffectiveRowWins(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaxRateStore()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, domain.TaxSlabRate{Slab: dec("5"), CGSTRate: dec("2.5"), SGSTRate: dec("2.5"), EffectiveFrom: jan}))
	require.NoError(t, store.Append(ctx, domain.TaxSlabRate{Slab: dec("5"), CGSTRate: dec("2"), SGSTRate: dec("3"), EffectiveFrom: jun}))
	require.NoError(t, store.Append(ctx, domain.TaxSlabRate{Slab: dec("18"), CGSTRate: dec("9"), SGSTRate: dec("9"), EffectiveFrom: jan}))

	row, ok, err := store.Latest(ctx, dec("5"), jun.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, dec("2.5").Equal(row.CGSTRate))

	row, ok, err = store.Latest(ctx, dec("5.00"), jun.Add(8*time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, dec("3").Equal(row.SGSTRate))

	_, ok, err = store.Latest(ctx, dec("12"), jun)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Latest(ctx, dec("5"), jan.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.False(t, ok, "rows effective in the future do not apply")

	current, err := store.ListCurrent(ctx, jun)
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.True(t, dec("5").Equal(current[0].Slab))
	assert.True(t, dec("2").Equal(current[0].CGSTRate))
	assert.True(t, dec("18").Equal(current[1].Slab))
}

func TestTaxRateStore_AppendDuplicateConflicts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTaxRateStore()
	day := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, domain.TaxSlabRate{Slab: dec("12"), CGSTRate: dec("6"), SGSTRate: dec("6"), EffectiveFrom: day}))
	err := store.Append(ctx, domain.TaxSlabRate{Slab: dec("12"), CGSTRate: dec("5"), SGSTRate: dec("7"), EffectiveFrom: day.Add(time.Hour)})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}
