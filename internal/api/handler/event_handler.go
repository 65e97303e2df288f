package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/ticketing-api/internal/api/metrics"
	"github.com/tickethub/ticketing-api/internal/core/ports"
)

// EventHandler exposes event creation, lookup, and booking.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"       validate:"required"`
	EventDate   time.Time `json:"event_date"  validate:"required"`
	TotalSeats  int       `json:"total_seats" validate:"required,gt=0"`
	BasePrice   float64   `json:"base_price"  validate:"gte=0"`
}

type createBookingRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

// Create handles POST /api/events. Admin only; the route is guarded by
// RequireRole.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		EventDate:   req.EventDate,
		TotalSeats:  req.TotalSeats,
		BasePrice:   req.BasePrice,
		CreatedBy:   userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Get handles GET /api/events/:id. Anonymous viewers are allowed; the
// favorite flag is personalized only when the gateway attached an identity.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id  path      string  true  "Event id"
// @Success      200  {object}  ports.EventDetail
// @Failure      404  {object}  errorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"), ctxViewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Book handles POST /api/bookings.
//
// @Summary      Book an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bookings [post]
func (h *EventHandler) Book(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Book(c.Request().Context(), userID, req.EventID)
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, booking)
}
