package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/semInDev/beour-be-sub001/internal/dto"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/service"
	"gorm.io/datatypes"
)

type CalendarHandler struct {
	svc service.CalendarService
}

func NewCalendarHandler(svc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// One endpoint per host-facing calendar view.
func (h *CalendarHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/hosts/:id/calendar", h.AllReservations)
	e.GET("/api/v1/hosts/:id/calendar/pending", h.PendingReservations)
	e.GET("/api/v1/hosts/:id/calendar/accepted", h.AcceptedReservations)
}

func (h *CalendarHandler) AllReservations(c echo.Context) error {
	return h.calendar(c, nil)
}

func (h *CalendarHandler) PendingReservations(c echo.Context) error {
	pending := models.StatusPending
	return h.calendar(c, &pending)
}

func (h *CalendarHandler) AcceptedReservations(c echo.Context) error {
	accepted := models.StatusAccepted
	return h.calendar(c, &accepted)
}

func (h *CalendarHandler) calendar(c echo.Context, status *models.ReservationStatus) error {
	hostID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid host id")
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected date=YYYY-MM-DD")
	}

	reservations, err := h.svc.HostCalendar(c.Request().Context(), hostID, datatypes.Date(date), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusFilter) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}
