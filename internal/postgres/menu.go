package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/repository"
	"github.com/jackc/pgx/v5"
)

type MenuRepository struct {
	repo repository.Querier
}

var _ domain.MenuRepository = (*MenuRepository)(nil)

func NewMenuRepository(repo repository.Querier) *MenuRepository {
	return &MenuRepository{repo: repo}
}

func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, domain.Internal(err, "postgres.menu.list", "failed to list menu")
	}
	return mapMenuItems(rows), nil
}

func (r *MenuRepository) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	const op = "postgres.menu.get"

	row, err := r.repo.GetMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "menu item", strconv.FormatInt(id, 10))
		}
		return nil, domain.Internal(err, op, "failed to load menu item")
	}
	item := mapMenuItem(row)
	return &item, nil
}

func (r *MenuRepository) GetMany(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	rows, err := r.repo.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, "postgres.menu.get_many", "failed to load menu items")
	}
	return mapMenuItems(rows), nil
}

func (r *MenuRepository) Create(ctx context.Context, params domain.MenuItemParams) (*domain.MenuItem, error) {
	const op = "postgres.menu.create"

	row, err := r.repo.CreateMenuItem(ctx, repository.CreateMenuItemParams{
		Name:     params.Name,
		Price:    toNumeric(params.Price),
		Category: params.Category,
		GstSlab:  toNumeric(params.Slab),
		HsnCode:  params.HSNCode,
		FoodType: string(params.FoodType),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Conflict(op, "menu item name already exists")
		}
		return nil, domain.Internal(err, op, "failed to create menu item")
	}
	item := mapMenuItem(row)
	return &item, nil
}

func (r *MenuRepository) Update(ctx context.Context, id int64, params domain.MenuItemParams) (*domain.MenuItem, error) {
	const op = "postgres.menu.update"

	row, err := r.repo.UpdateMenuItem(ctx, repository.UpdateMenuItemParams{
		ID:       id,
		Name:     params.Name,
		Price:    toNumeric(params.Price),
		Category: params.Category,
		GstSlab:  toNumeric(params.Slab),
		HsnCode:  params.HSNCode,
		FoodType: string(params.FoodType),
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.NotFound(op, "menu item", strconv.FormatInt(id, 10))
		case isUniqueViolation(err):
			return nil, domain.Conflict(op, "menu item name already exists")
		}
		return nil, domain.Internal(err, op, "failed to update menu item")
	}
	item := mapMenuItem(row)
	return &item, nil
}

func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	const op = "postgres.menu.delete"

	n, err := r.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to delete menu item")
	}
	if n == 0 {
		return domain.NotFound(op, "menu item", strconv.FormatInt(id, 10))
	}
	return nil
}

func mapMenuItems(rows []repository.MenuItem) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapMenuItem(row))
	}
	return items
}

func mapMenuItem(row repository.MenuItem) domain.MenuItem {
	return domain.MenuItem{
		ID:        row.ID,
		Name:      row.Name,
		Price:     fromNumeric(row.Price),
		Category:  row.Category,
		Slab:      fromNumeric(row.GstSlab),
		HSNCode:   row.HsnCode,
		FoodType:  domain.FoodType(row.FoodType),
		UpdatedAt: row.UpdatedAt.Time,
	}
}
