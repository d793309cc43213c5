package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/annuaire/directory-system/internal/api/metrics"
	"github.com/annuaire/directory-system/internal/core/dispatch"
)

// PDUHandler exposes the single request/response entry point used by
// transport collaborators. The requester is the identity asserted in the
// request body, exactly as the file-drop transport asserted it; clients
// wanting enforced identity use the REST routes instead.
type PDUHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewPDUHandler(dispatcher *dispatch.Dispatcher) *PDUHandler {
	return &PDUHandler{dispatcher: dispatcher}
}

// Handle processes POST /v1/pdu. The HTTP status mirrors the envelope status
// so both kinds of clients read the same outcome.
func (h *PDUHandler) Handle(c echo.Context) error {
	var req dispatch.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	start := time.Now()
	resp := h.dispatcher.Handle(c.Request().Context(), req)
	metrics.RequestDuration.WithLabelValues(req.Action).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(req.Action, strconv.Itoa(resp.Status)).Inc()
	if resp.Status == http.StatusForbidden {
		metrics.AccessDeniedTotal.Inc()
	}

	return c.JSON(resp.Status, resp)
}
