package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Rooms    int    `json:"rooms"`
	Sessions int    `json:"sessions"`
}

// Health writes a health check response.
func Health(c echo.Context, rooms, sessions int) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:   "ok",
		Rooms:    rooms,
		Sessions: sessions,
	})
}
