package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventorypulse/internal/service"
	"inventorypulse/pkg/logger"
)

// AlertHandler serves the advisory alert endpoints
type AlertHandler struct {
	alerts service.AlertStore
}

func NewAlertHandler(alerts service.AlertStore) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List returns alerts, newest first; ?seen=false filters to unseen only
func (h *AlertHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	onlyUnseen := false
	if raw := c.QueryParam("seen"); raw != "" {
		seen, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seen filter"})
		}
		onlyUnseen = !seen
	}

	alerts, err := h.alerts.List(c.Request().Context(), onlyUnseen)
	if err != nil {
		log.Error("Failed to list alerts", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve alerts"})
	}

	return c.JSON(http.StatusOK, alerts)
}

// MarkSeen marks a single alert as seen
func (h *AlertHandler) MarkSeen(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid alert id"})
	}

	found, err := h.alerts.MarkSeen(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to mark alert seen", zap.Uint("alert_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update alert"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "alert not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "alert marked as seen"})
}
