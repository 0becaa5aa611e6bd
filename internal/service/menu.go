package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/events"
	"github.com/shopspring/decimal"
)

// MenuService manages the catalog that carts are priced from.
type MenuService interface {
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, params domain.MenuItemParams) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id int64, params domain.MenuItemParams) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

type menuService struct {
	menu   domain.MenuRepository
	events events.Publisher
	gate   *Gate
	logger *slog.Logger
}

// NewMenuService creates a new MenuService instance
func NewMenuService(menu domain.MenuRepository, publisher events.Publisher, gate *Gate, logger *slog.Logger) MenuService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if gate == nil {
		gate = NewGate(nil, logger)
	}
	return &menuService{menu: menu, events: publisher, gate: gate, logger: logger}
}

func (s *menuService) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	if err := s.gate.Authorize(ctx, "service.menu.list"); err != nil {
		return nil, err
	}
	return s.menu.List(ctx)
}

func (s *menuService) GetItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	if err := s.gate.Authorize(ctx, "service.menu.get"); err != nil {
		return nil, err
	}
	return s.menu.Get(ctx, id)
}

func (s *menuService) CreateItem(ctx context.Context, params domain.MenuItemParams) (*domain.MenuItem, error) {
	const op = "service.menu.create"

	if err := s.gate.Authorize(ctx, op, auth.ManageMenu); err != nil {
		return nil, err
	}
	params, err := normalizeMenuParams(op, params)
	if err != nil {
		return nil, err
	}
	item, err := s.menu.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, "created", item.ID)
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, id int64, params domain.MenuItemParams) (*domain.MenuItem, error) {
	const op = "service.menu.update"

	if err := s.gate.Authorize(ctx, op, auth.ManageMenu); err != nil {
		return nil, err
	}
	params, err := normalizeMenuParams(op, params)
	if err != nil {
		return nil, err
	}
	item, err := s.menu.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, "updated", id)
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, id int64) error {
	const op = "service.menu.delete"

	if err := s.gate.Authorize(ctx, op, auth.ManageMenu); err != nil {
		return err
	}
	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, "deleted", id)
	return nil
}

func (s *menuService) changed(ctx context.Context, action string, id int64) {
	s.logger.Info("menu item "+action, "menu_item_id", id)

	e := events.New(events.MenuUpdated)
	e.MenuItemID = id
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", "type", e.Type, "error", err)
	}
}

var hundred = decimal.NewFromInt(100)

// normalizeMenuParams trims text fields, applies defaults and validates.
func normalizeMenuParams(op string, p domain.MenuItemParams) (domain.MenuItemParams, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.HSNCode = strings.TrimSpace(p.HSNCode)
	if p.HSNCode == "" {
		p.HSNCode = domain.DefaultHSNCode
	}
	if p.FoodType == "" {
		p.FoodType = domain.FoodTypeVeg
	}

	var err error
	if p.Name == "" {
		err = domain.AddFieldError(err, "name", "is required")
	}
	if p.Price.IsNegative() {
		err = domain.AddFieldError(err, "price", "must not be negative")
	}
	if p.Slab.IsNegative() || p.Slab.GreaterThan(hundred) {
		err = domain.AddFieldError(err, "gst_slab", "must be between 0 and 100")
	}
	if p.FoodType != domain.FoodTypeVeg && p.FoodType != domain.FoodTypeNonVeg {
		err = domain.AddFieldError(err, "food_type", "must be veg or non-veg")
	}
	if ve, ok := err.(*domain.ValidationError); ok {
		ve.Op = op
	}
	return p, err
}
