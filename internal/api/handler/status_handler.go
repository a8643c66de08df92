package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundwolves/soundwolves-api/internal/api/metrics"
	"github.com/soundwolves/soundwolves-api/internal/core/ports"
)

// StatusHandler handles the client heartbeat endpoints.
type StatusHandler struct {
	service ports.StatusCheckService
}

func NewStatusHandler(service ports.StatusCheckService) *StatusHandler {
	return &StatusHandler{service: service}
}

type statusCheckRequest struct {
	ClientName string `json:"client_name" validate:"required,min=1,max=100"`
}

// Create handles POST /status.
//
// @Summary      Record a status check
// @Tags         status
// @Accept       json
// @Produce      json
// @Param        body  body      statusCheckRequest  true  "Client name"
// @Success      200   {object}  domain.StatusCheck
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /status [post]
func (h *StatusHandler) Create(c echo.Context) error {
	var req statusCheckRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	check, err := h.service.Create(c.Request().Context(), req.ClientName)
	if err != nil {
		return err
	}
	metrics.StatusChecksCreatedTotal.Inc()

	return c.JSON(http.StatusOK, check)
}

// List handles GET /status.
//
// @Summary      List status checks
// @Tags         status
// @Produce      json
// @Success      200  {array}   domain.StatusCheck
// @Failure      429  {object}  errorResponse
// @Router       /status [get]
func (h *StatusHandler) List(c echo.Context) error {
	checks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checks)
}
