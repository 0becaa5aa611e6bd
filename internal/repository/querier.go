package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	CountActiveUsersByRole(ctx context.Context, role string) (int64, error)
	CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error)
	CreateOrder(ctx context.Context, arg CreateOrderParams) error
	CreateOrderLine(ctx context.Context, arg CreateOrderLineParams) error
	CreateTaxRate(ctx context.Context, arg CreateTaxRateParams) error
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	DailyPaidSales(ctx context.Context, arg DailyPaidSalesParams) (DailyPaidSalesRow, error)
	DeleteMenuItem(ctx context.Context, id int64) (int64, error)
	GetLatestTaxRate(ctx context.Context, arg GetLatestTaxRateParams) (TaxSlabRate, error)
	GetMenuItem(ctx context.Context, id int64) (MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []int64) ([]MenuItem, error)
	GetOrderByInvoice(ctx context.Context, invoiceNumber string) (Order, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListCurrentTaxRates(ctx context.Context, asOf pgtype.Date) ([]TaxSlabRate, error)
	ListMenuItems(ctx context.Context) ([]MenuItem, error)
	ListOpenOrders(ctx context.Context) ([]Order, error)
	ListOrderLines(ctx context.Context, orderIds []int64) ([]OrderLine, error)
	NextOrderID(ctx context.Context) (int64, error)
	TransitionOpenOrder(ctx context.Context, arg TransitionOpenOrderParams) (int64, error)
	UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error)
}

var _ Querier = (*Queries)(nil)
