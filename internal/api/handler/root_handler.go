package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundwolves/soundwolves-api/internal/api/middleware"
)

type rootResponse struct {
	Message  string `json:"message"`
	Status   string `json:"status"`
	ViewerID string `json:"viewer_id,omitempty"`
}

// Root handles GET /api/. The viewer is reported when the request carries a
// valid access token.
//
// @Summary      API banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  rootResponse
// @Router       / [get]
func Root(c echo.Context) error {
	resp := rootResponse{Message: "SoundWolves API", Status: "healthy"}
	if user := middleware.CurrentUser(c); user != nil {
		resp.ViewerID = user.ID
	}
	return c.JSON(http.StatusOK, resp)
}
