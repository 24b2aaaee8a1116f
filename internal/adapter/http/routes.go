package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all room filter API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *RoomHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)
	api.GET("/rooms", h.ListRooms)

	sessions := api.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.PATCH("/:id/filters", h.UpdateFilter)
	sessions.DELETE("/:id/filters", h.ClearFilters)
	sessions.PUT("/:id/search", h.UpdateSearch)
	sessions.PUT("/:id/price", h.UpdatePriceRange)
	sessions.PUT("/:id/sort", h.SetSort)
	sessions.PUT("/:id/page", h.SetPage)
	sessions.POST("/:id/amenities/:name/toggle", h.ToggleAmenity)
}
