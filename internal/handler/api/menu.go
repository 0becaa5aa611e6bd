package api

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/handler"
	"github.com/dukerupert/tabletab/internal/service"
	"github.com/shopspring/decimal"
)

// MenuHandler handles menu catalog routes
type MenuHandler struct {
	menu service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

type menuItemRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Category string          `json:"category" validate:"max=60"`
	GSTSlab  decimal.Decimal `json:"gst_slab" validate:"gte=0,lte=100"`
	HSNCode  string          `json:"hsn_code" validate:"omitempty,numeric,min=4,max=8"`
	FoodType string          `json:"food_type" validate:"omitempty,oneof=veg non-veg"`
}

func (req menuItemRequest) params() domain.MenuItemParams {
	return domain.MenuItemParams{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Slab:     req.GSTSlab,
		HSNCode:  req.HSNCode,
		FoodType: domain.FoodType(req.FoodType),
	}
}

// List handles GET /api/menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListItems(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	handler.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// Get handles GET /api/menu/{id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := menuItemID(r, "api.menu.get")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	item, err := h.menu.GetItem(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, item)
}

// Create handles POST /api/menu
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := handler.DecodeJSON(r, "api.menu.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	item, err := h.menu.CreateItem(r.Context(), req.params())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/menu/"+strconv.FormatInt(item.ID, 10))
	handler.JSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/menu/{id}
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "api.menu.update"

	id, err := menuItemID(r, op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	var req menuItemRequest
	if err := handler.DecodeJSON(r, op, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	item, err := h.menu.UpdateItem(r.Context(), id, req.params())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu/{id}
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := menuItemID(r, "api.menu.delete")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.menu.DeleteItem(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func menuItemID(r *http.Request, op string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(op, "Menu item id must be a positive integer")
	}
	return id, nil
}
