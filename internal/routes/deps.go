package routes

import (
	"net/http"

	"github.com/dukerupert/tabletab/internal/handler/api"
	"github.com/dukerupert/tabletab/internal/router"
)

// APIDeps contains dependencies for API routes
type APIDeps struct {
	AuthHandler     *api.AuthHandler
	MenuHandler     *api.MenuHandler
	OrderHandler    *api.OrderHandler
	SettingsHandler *api.SettingsHandler
	ReportHandler   *api.ReportHandler

	// LoginLimiter throttles password attempts per client. Optional.
	LoginLimiter router.Middleware

	// ArchiveDir serves archived documents when the local store is in use.
	// Empty when documents go to S3.
	ArchiveDir    string
	ArchivePrefix string
}

// OpsDeps contains dependencies for operational endpoints
type OpsDeps struct {
	Health  http.HandlerFunc
	Metrics http.Handler
}
