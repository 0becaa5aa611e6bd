package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/events"
	"github.com/dukerupert/tabletab/internal/memory"
	"github.com/dukerupert/tabletab/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuService(t *testing.T) {
	store := memory.NewMenuStore()
	rec := &events.Recorder{}
	svc := service.NewMenuService(store, rec, nil, nil)
	admin := as(domain.RoleAdmin)

	item, err := svc.CreateItem(admin, domain.MenuItemParams{
		Name:  "  Paneer Tikka ",
		Price: dec("240"),
		Slab:  dec("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Paneer Tikka", item.Name)
	assert.Equal(t, domain.DefaultHSNCode, item.HSNCode)
	assert.Equal(t, domain.FoodTypeVeg, item.FoodType)

	_, err = svc.CreateItem(admin, domain.MenuItemParams{Name: "", Price: dec("-1"), Slab: dec("101"), FoodType: "vegan"})
	require.Error(t, err)
	fields := domain.GetValidationFields(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "gst_slab")
	assert.Contains(t, fields, "food_type")

	_, err = svc.CreateItem(as(domain.RoleCaptain), domain.MenuItemParams{Name: "Naan", Price: dec("40"), Slab: dec("5")})
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	updated, err := svc.UpdateItem(admin, item.ID, domain.MenuItemParams{Name: "Paneer Tikka", Price: dec("260"), Slab: dec("5"), FoodType: domain.FoodTypeVeg})
	require.NoError(t, err)
	assert.True(t, dec("260").Equal(updated.Price))

	items, err := svc.ListItems(as(domain.RoleCashier))
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.DeleteItem(admin, item.ID))
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(svc.DeleteItem(admin, item.ID)))

	assert.Equal(t, []events.Type{events.MenuUpdated, events.MenuUpdated, events.MenuUpdated}, rec.Types())
}

func TestTaxRateService(t *testing.T) {
	store := memory.NewTaxRateStore()
	svc := service.NewTaxRateService(store, time.UTC, nil, nil)

	err := svc.Append(as(domain.RoleAdmin), domain.TaxSlabRate{Slab: dec("5"), CGSTRate: dec("2.5"), SGSTRate: dec("2.5")})
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err), "configure_settings is super admin only")

	root := as(domain.RoleSuperAdmin)
	require.NoError(t, svc.Append(root, domain.TaxSlabRate{Slab: dec("5"), CGSTRate: dec("2"), SGSTRate: dec("3")}))

	err = svc.Append(root, domain.TaxSlabRate{Slab: dec("5"), CGSTRate: dec("2"), SGSTRate: dec("3")})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err), "same slab and day")

	err = svc.Append(root, domain.TaxSlabRate{Slab: dec("120"), CGSTRate: dec("-1"), SGSTRate: dec("1")})
	assert.True(t, domain.IsValidationError(err))

	current, err := svc.ListCurrent(as(domain.RoleCashier))
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.True(t, dec("3").Equal(current[0].SGSTRate))
}

func TestUserService(t *testing.T) {
	users := memory.NewUserStore()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := service.NewUserService(users, tokens, nil, nil, nil)
	root := as(domain.RoleSuperAdmin)

	created, err := svc.CreateUser(root, "ravi", "Ravi Kumar", "cashier-pass", domain.RoleCashier)
	require.NoError(t, err)
	assert.True(t, created.Active)

	_, err = svc.CreateUser(root, "ravi", "Other", "cashier-pass", domain.RoleCashier)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	_, err = svc.CreateUser(root, "", "", "short", domain.Role("WAITER"))
	fields := domain.GetValidationFields(err)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "role")

	_, err = svc.CreateUser(as(domain.RoleAdmin), "meena", "", "captain-pass", domain.RoleCaptain)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	session, err := svc.Authenticate(context.Background(), "ravi", "cashier-pass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, int64(3600), session.ExpiresIn)

	p, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCashier, p.Role)

	_, err = svc.Authenticate(context.Background(), "ravi", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Authenticate(context.Background(), "nobody", "whatever1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestReportService_DailySales(t *testing.T) {
	f := newFixture(t)
	paid := f.exampleOrder(t)
	_, err := f.order.CreateOrder(as(domain.RoleCaptain), service.CheckoutRequest{
		Lines: []domain.CartLine{{MenuItemID: 1, Name: "Item A", Rate: dec("100"), Slab: dec("5"), Quantity: 1}},
	})
	require.NoError(t, err)

	ok, err := f.order.MarkPaid(as(domain.RoleCashier), paid.InvoiceNumber)
	require.NoError(t, err)
	require.True(t, ok)

	svc := service.NewReportService(f.orders, time.UTC, nil)

	_, err = svc.DailySales(as(domain.RoleCaptain), time.Time{})
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	sales, err := svc.DailySales(as(domain.RoleAdmin), paid.InvoiceDate)
	require.NoError(t, err)
	assert.Equal(t, 1, sales.OrderCount)
	assert.True(t, dec("400.00").Equal(sales.Subtotal))
	assert.True(t, dec("454.00").Equal(sales.Total))
}
