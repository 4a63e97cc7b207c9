package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/semInDev/beour-be-sub001/internal/dto"
	"github.com/semInDev/beour-be-sub001/internal/service"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	e.PUT("/api/v1/spaces/:id/availability/:date", h.ReplaceAvailability)
	e.GET("/api/v1/spaces/:id/availability/:date", h.GetAvailability)
}

func (h *AvailabilityHandler) ReplaceAvailability(c echo.Context) error {
	spaceID, date, err := parseSpaceDate(c)
	if err != nil {
		return err
	}

	var req dto.ReplaceAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ranges := make([]timeslot.Range, 0, len(req.Ranges))
	for _, payload := range req.Ranges {
		window, err := parseWindow(payload.Start, payload.End)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		ranges = append(ranges, window)
	}

	availability, err := h.svc.ReplaceAvailability(c.Request().Context(), spaceID, datatypes.Date(date), ranges)
	if err != nil {
		var orphaned *service.OrphanedReservationsError
		switch {
		case errors.As(err, &orphaned):
			// The host must resolve these reservations before shrinking the day.
			return c.JSON(http.StatusConflict, dto.ErrorResponse{
				Message:        orphaned.Error(),
				ReservationIDs: orphaned.ReservationIDs,
			})
		case errors.Is(err, timeslot.ErrInvalidRange):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrSpaceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStorageConflict):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	stored, err := availability.TimeRanges()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(spaceID, date, stored))
}

func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	spaceID, date, err := parseSpaceDate(c)
	if err != nil {
		return err
	}

	ranges, err := h.svc.GetAvailability(c.Request().Context(), spaceID, datatypes.Date(date))
	if err != nil {
		if errors.Is(err, service.ErrNoAvailability) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(spaceID, date, ranges))
}

func parseSpaceDate(c echo.Context) (uint, time.Time, error) {
	spaceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid space id")
	}
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return 0, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	return uint(spaceID), date, nil
}
