package service

import (
	"github.com/dukerupert/tabletab/internal/domain"
)

// Authentication errors
var (
	ErrInvalidCredentials = domain.Errorf(domain.EUNAUTHORIZED, "", "Invalid username or password")
	ErrAccountInactive    = domain.Errorf(domain.EFORBIDDEN, "", "Account is disabled")
)

// Order errors
var (
	ErrOrderNotFound = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
	ErrOrderSettled  = domain.Errorf(domain.ECONFLICT, "", "Order is no longer open")
	ErrNoCartItems   = domain.Errorf(domain.EINVALID, "", "Order has no items")
)

// Archive errors
var (
	ErrArchiveDisabled = domain.Errorf(domain.ENOTIMPL, "", "Document archive is not configured")
)
