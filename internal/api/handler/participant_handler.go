package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecell-iiitr/gatepass/internal/core/ports"
	"github.com/ecell-iiitr/gatepass/internal/export"
)

// ParticipantHandler exposes lookup, check-in, history, stats and the history
// export over HTTP. All routes sit behind the Auth middleware.
type ParticipantHandler struct {
	service ports.ParticipantService
}

func NewParticipantHandler(service ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{service: service}
}

type checkInResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// Get handles GET /participant/:id.
func (h *ParticipantHandler) Get(c echo.Context) error {
	p, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// CheckIn handles PUT /participant/:id/checkin. The acting staff member is
// taken from the session token, never from the request body.
func (h *ParticipantHandler) CheckIn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.CheckIn(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkInResponse{
		Message: "Check-in successful",
		Name:    result.Name,
	})
}

// History handles GET /participants: every checked-in participant, in the
// order the store returns them.
func (h *ParticipantHandler) History(c echo.Context) error {
	history, err := h.service.ListHistory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

// Stats handles GET /stats.
func (h *ParticipantHandler) Stats(c echo.Context) error {
	stats, err := h.service.GetStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Export handles GET /participants/export, streaming the check-in history as
// an xlsx attachment.
func (h *ParticipantHandler) Export(c echo.Context) error {
	history, err := h.service.ListHistory(c.Request().Context())
	if err != nil {
		return err
	}

	filename := "checkin-history-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	return export.WriteHistory(c.Response(), history)
}
