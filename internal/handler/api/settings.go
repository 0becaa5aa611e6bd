package api

import (
	"net/http"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/handler"
	"github.com/dukerupert/tabletab/internal/service"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles tax slab and staff account administration
type SettingsHandler struct {
	rates service.TaxRateService
	users service.UserService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(rates service.TaxRateService, users service.UserService) *SettingsHandler {
	return &SettingsHandler{rates: rates, users: users}
}

type taxRateRequest struct {
	Slab          decimal.Decimal `json:"slab" validate:"gte=0,lte=100"`
	CGSTRate      decimal.Decimal `json:"cgst_rate" validate:"gte=0,lte=100"`
	SGSTRate      decimal.Decimal `json:"sgst_rate" validate:"gte=0,lte=100"`
	EffectiveFrom *time.Time      `json:"effective_from,omitempty"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	FullName string `json:"full_name" validate:"max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN CAPTAIN CASHIER"`
}

// ListTaxRates handles GET /api/tax-rates
func (h *SettingsHandler) ListTaxRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rates.ListCurrent(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if rates == nil {
		rates = []domain.TaxSlabRate{}
	}
	handler.JSON(w, http.StatusOK, map[string]any{"rates": rates})
}

// AppendTaxRate handles POST /api/tax-rates. A new row supersedes the
// previous one for the slab from its effective date.
func (h *SettingsHandler) AppendTaxRate(w http.ResponseWriter, r *http.Request) {
	var req taxRateRequest
	if err := handler.DecodeJSON(r, "api.tax_rate.append", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rate := domain.TaxSlabRate{
		Slab:     req.Slab,
		CGSTRate: req.CGSTRate,
		SGSTRate: req.SGSTRate,
	}
	if req.EffectiveFrom != nil {
		rate.EffectiveFrom = *req.EffectiveFrom
	}

	if err := h.rates.Append(r.Context(), rate); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// CreateUser handles POST /api/users
func (h *SettingsHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := handler.DecodeJSON(r, "api.user.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.FullName, req.Password, domain.Role(req.Role))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, user)
}
