package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/semInDev/beour-be-sub001/internal/dto"
	"github.com/semInDev/beour-be-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// --- Mock CalendarService ---

type mockCalendarService struct {
	hostCalendarFn func(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error)
}

func (m *mockCalendarService) HostCalendar(ctx context.Context, hostID uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
	return m.hostCalendarFn(ctx, hostID, date, status)
}

// --- Tests ---

func TestCalendar_Handler_All(t *testing.T) {
	hostID := uuid.New()
	svc := &mockCalendarService{
		hostCalendarFn: func(ctx context.Context, h uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
			assert.Equal(t, hostID, h)
			assert.Nil(t, status)
			return []models.Reservation{
				{ID: 1, HostID: h, StartTime: 9 * 60, EndTime: 10 * 60, Status: models.StatusPending},
				{ID: 2, HostID: h, StartTime: 11 * 60, EndTime: 12 * 60, Status: models.StatusAccepted},
			}, nil
		},
	}

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/hosts/"+hostID.String()+"/calendar?date=2026-03-01", "")
	c.SetParamNames("id")
	c.SetParamValues(hostID.String())

	h := NewCalendarHandler(svc)
	require.NoError(t, h.AllReservations(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "09:00", resp[0].StartTime)
	assert.Equal(t, "11:00", resp[1].StartTime)
}

func TestCalendar_Handler_PendingFilter(t *testing.T) {
	var gotStatus *models.ReservationStatus
	svc := &mockCalendarService{
		hostCalendarFn: func(ctx context.Context, h uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
			gotStatus = status
			return nil, nil
		},
	}

	hostID := uuid.NewString()
	c, rec := newTestContext(t, http.MethodGet, "/api/v1/hosts/"+hostID+"/calendar/pending?date=2026-03-01", "")
	c.SetParamNames("id")
	c.SetParamValues(hostID)

	h := NewCalendarHandler(svc)
	require.NoError(t, h.PendingReservations(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotStatus)
	assert.Equal(t, models.StatusPending, *gotStatus)
}

func TestCalendar_Handler_AcceptedFilter(t *testing.T) {
	var gotStatus *models.ReservationStatus
	svc := &mockCalendarService{
		hostCalendarFn: func(ctx context.Context, h uuid.UUID, date datatypes.Date, status *models.ReservationStatus) ([]models.Reservation, error) {
			gotStatus = status
			return nil, nil
		},
	}

	hostID := uuid.NewString()
	c, _ := newTestContext(t, http.MethodGet, "/api/v1/hosts/"+hostID+"/calendar/accepted?date=2026-03-01", "")
	c.SetParamNames("id")
	c.SetParamValues(hostID)

	h := NewCalendarHandler(svc)
	require.NoError(t, h.AcceptedReservations(c))
	require.NotNil(t, gotStatus)
	assert.Equal(t, models.StatusAccepted, *gotStatus)
}

func TestCalendar_Handler_InvalidHostID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/api/v1/hosts/42/calendar?date=2026-03-01", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	h := NewCalendarHandler(nil)
	err := h.AllReservations(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCalendar_Handler_MissingDate(t *testing.T) {
	hostID := uuid.NewString()
	c, _ := newTestContext(t, http.MethodGet, "/api/v1/hosts/"+hostID+"/calendar", "")
	c.SetParamNames("id")
	c.SetParamValues(hostID)

	h := NewCalendarHandler(nil)
	err := h.AllReservations(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
