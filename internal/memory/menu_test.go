package memory_test

import (
	"context"
	"testing"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMenuStore()

	dal, err := store.Create(ctx, domain.MenuItemParams{Name: "Dal Makhani", Price: dec("220"), Category: "Mains", Slab: dec("5"), FoodType: domain.FoodTypeVeg})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.MenuItemParams{Name: "Lassi", Price: dec("80"), Category: "Drinks", Slab: dec("5"), FoodType: domain.FoodTypeVeg})
	require.NoError(t, err)

	_, err = store.Create(ctx, domain.MenuItemParams{Name: "Lassi", Price: dec("90"), Category: "Drinks", Slab: dec("5")})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lassi", items[0].Name, "Drinks sorts before Mains")

	updated, err := store.Update(ctx, dal.ID, domain.MenuItemParams{Name: "Dal Makhani", Price: dec("240"), Category: "Mains", Slab: dec("5")})
	require.NoError(t, err)
	assert.True(t, dec("240").Equal(updated.Price))

	many, err := store.GetMany(ctx, []int64{dal.ID, 999})
	require.NoError(t, err)
	assert.Len(t, many, 1)

	require.NoError(t, store.Delete(ctx, dal.ID))
	_, err = store.Get(ctx, dal.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(store.Delete(ctx, dal.ID)))
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()

	_, err := store.Create(ctx, domain.NewUserParams{Username: "root", Role: domain.RoleSuperAdmin, PasswordHash: "x"})
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.NewUserParams{Username: "root", Role: domain.RoleCashier})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	n, err := store.CountByRole(ctx, domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := store.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, u.Active)

	_, err = store.GetByUsername(ctx, "nobody")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
