package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/ticketing-api/internal/core/ports"
)

// DashboardHandler serves the per-user dashboard views. Every route requires
// an identity; anonymous requests are rejected here, not at the gateway.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type favoriteResponse struct {
	Favorited bool `json:"favorited"`
}

// Summary handles GET /api/dashboard.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Filter recommended events by title, description, or venue"
// @Success      200     {object}  ports.Summary
// @Failure      401     {object}  errorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), userID, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// MyTickets handles GET /api/dashboard/my-tickets.
//
// @Summary      List the caller's tickets
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.Ticket
// @Failure      401  {object}  errorResponse
// @Router       /api/dashboard/my-tickets [get]
func (h *DashboardHandler) MyTickets(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.MyTickets(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// ToggleFavorite handles POST /api/dashboard/favorite/:eventId.
//
// @Summary      Toggle an event favorite
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        eventId  path      string  true  "Event id"
// @Success      200      {object}  favoriteResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/dashboard/favorite/{eventId} [post]
func (h *DashboardHandler) ToggleFavorite(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	favorited, err := h.service.ToggleFavorite(c.Request().Context(), userID, c.Param("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favoriteResponse{Favorited: favorited})
}

// Notifications handles GET /api/dashboard/notifications.
//
// @Summary      List recent notifications
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Notification
// @Failure      401  {object}  errorResponse
// @Router       /api/dashboard/notifications [get]
func (h *DashboardHandler) Notifications(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	list, err := h.service.Notifications(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
