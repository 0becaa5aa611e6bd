// Package auth holds the role/action table, password hashing and the JWT
// issuer used by the API.
package auth

import "github.com/dukerupert/tabletab/internal/domain"

// Action is a permission checked before a mutating or sensitive operation.
type Action string

const (
	ManageUsers       Action = "manage_users"
	ManageMenu        Action = "manage_menu"
	ViewReports       Action = "view_reports"
	CreateOrder       Action = "create_order"
	CheckoutBill      Action = "checkout_bill"
	ConfigureSettings Action = "configure_settings"
	LookupBill        Action = "lookup_bill"
)

// Actions lists every known action.
var Actions = []Action{
	ManageUsers, ManageMenu, ViewReports, CreateOrder,
	CheckoutBill, ConfigureSettings, LookupBill,
}

var rolePermissions = map[domain.Role]map[Action]bool{
	domain.RoleSuperAdmin: {
		ManageUsers: true, ManageMenu: true, ViewReports: true, CreateOrder: true,
		CheckoutBill: true, ConfigureSettings: true, LookupBill: true,
	},
	domain.RoleAdmin: {
		ManageMenu: true, ViewReports: true, CreateOrder: true, CheckoutBill: true,
	},
	domain.RoleCaptain: {
		CreateOrder: true, CheckoutBill: true,
	},
	domain.RoleCashier: {
		CheckoutBill: true, LookupBill: true,
	},
}

// Can reports whether p may perform action. A nil principal or an unknown
// role is denied.
func Can(p *domain.Principal, action Action) bool {
	if p == nil {
		return false
	}
	return RoleCan(p.Role, action)
}

// RoleCan is Can for a bare role.
func RoleCan(role domain.Role, action Action) bool {
	return rolePermissions[role][action]
}

// Authorize returns an EFORBIDDEN error when p may not perform action.
func Authorize(p *domain.Principal, action Action, op string) error {
	if Can(p, action) {
		return nil
	}
	if p == nil {
		return domain.Unauthorized(op, "authentication required")
	}
	return domain.Forbidden(op, "role "+string(p.Role)+" cannot "+string(action))
}
