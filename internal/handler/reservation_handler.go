package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/semInDev/beour-be-sub001/internal/dto"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/semInDev/beour-be-sub001/internal/service"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/spaces/:id/reservations", h.CreateReservation)
	e.GET("/api/v1/reservations/:id", h.GetReservation)
	e.DELETE("/api/v1/reservations/:id", h.CancelReservation)
	e.PATCH("/api/v1/reservations/:id/status", h.DecideReservation)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	spaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid space id")
	}

	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Identity is resolved upstream; here it arrives as a plain identifier.
	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid guest id")
	}
	window, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	reservation, err := h.svc.CreateReservation(c.Request().Context(), service.CreateReservationInput{
		SpaceID:    uint(spaceID),
		GuestID:    guestID,
		Date:       datatypes.Date(date),
		Window:     window,
		Price:      req.Price,
		GuestCount: req.GuestCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSpaceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoAvailability):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOutsideWindow):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, timeslot.ErrInvalidRange):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrSlotBooked):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrStorageConflict):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.svc.GetReservation(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	reservation, err := h.svc.CancelReservation(c.Request().Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrStorageConflict):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) DecideReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	var req dto.DecideReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservation, err := h.svc.DecideReservation(c.Request().Context(), uint(id), models.ReservationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrStorageConflict):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func parseWindow(start, end string) (timeslot.Range, error) {
	s, err := timeslot.ParseTimeOfDay(start)
	if err != nil {
		return timeslot.Range{}, err
	}
	e, err := timeslot.ParseTimeOfDay(end)
	if err != nil {
		return timeslot.Range{}, err
	}
	return timeslot.Range{Start: s, End: e}, nil
}
