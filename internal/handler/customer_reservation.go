package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/canchapp/cancha-reservation/internal/model"
	"github.com/canchapp/cancha-reservation/internal/queue"
	queue_publisher "github.com/canchapp/cancha-reservation/internal/service"
	"github.com/canchapp/cancha-reservation/internal/store"
)

// CustomerHandler serves the mobile app's session surface: creating and
// cancelling reservations, listing them by filter, checking slot
// availability and managing favorites.  All state flows through the
// reservation store; this layer only binds requests, maps errors and
// emits domain events.
type CustomerHandler struct {
	Store   *store.Store  // the session's reservation store
	Catalog store.Catalog // read-only facility lookups for responses and events
}

// NewCustomerHandler constructs a CustomerHandler.  Both dependencies
// must be non-nil.
func NewCustomerHandler(st *store.Store, catalog store.Catalog) *CustomerHandler {
	if st == nil || catalog == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Store: st, Catalog: catalog}
}

// publishEvent emits a reservation event in the background.  Publish
// failures are logged by the publisher and never affect the request.
func (h *CustomerHandler) publishEvent(eventType string, res *model.Reservation) {
	facilityName := ""
	if fac, err := h.Catalog.GetByID(context.Background(), res.FacilityID); err == nil {
		facilityName = fac.Name
	}
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		FacilityID:    res.FacilityID,
		FacilityName:  facilityName,
		Date:          res.Date,
		TimeSlots:     res.TimeSlots,
		Status:        res.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishReservationEvent(context.Background(), ev) }()
}

// CreateReservation handles POST /v1/reservations.  The request body
// must carry a facility id, a calendar date and a non-empty slot list.
// On success it returns 201 with the created reservation, which is
// immediately visible to subsequent list queries.
func (h *CustomerHandler) CreateReservation(c echo.Context) error {
	var body struct {
		FacilityID string   `json:"facility_id"`
		Date       string   `json:"date"`
		TimeSlots  []string `json:"time_slots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.Store.CreateReservation(c.Request().Context(), body.FacilityID, body.Date, body.TimeSlots)
	if err != nil {
		return storeErrorResponse(c, err)
	}
	h.publishEvent(queue.EventReservationCreated, res)
	return c.JSON(http.StatusCreated, echo.Map{"reservation": res})
}

// CancelReservation handles DELETE /v1/reservations/:id.  The record is
// marked cancelled but stays queryable; cancelling twice succeeds.  An
// unknown id yields 404.
func (h *CustomerHandler) CancelReservation(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, changed, err := h.Store.CancelReservation(c.Request().Context(), id)
	if err != nil {
		return storeErrorResponse(c, err)
	}
	if changed {
		h.publishEvent(queue.EventReservationCancelled, res)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReservations handles GET /v1/reservations?filter=.  The filter is
// one of all, upcoming, past or cancelled and defaults to all.  The
// response is a snapshot; mutating it cannot affect the store.
func (h *CustomerHandler) ListReservations(c echo.Context) error {
	filter, ok := store.ParseFilter(c.QueryParam("filter"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "filter must be one of all, upcoming, past, cancelled"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.ListReservations(filter)})
}

// GetAvailability handles GET /v1/facilities/:id/availability?date=.
// It returns the facility's published slots minus those covered by a
// non-cancelled reservation for that date.
func (h *CustomerHandler) GetAvailability(c echo.Context) error {
	facilityID := c.Param("id")
	date := c.QueryParam("date")
	slots, err := h.Store.AvailableSlots(c.Request().Context(), facilityID, date)
	if err != nil {
		return storeErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"facility_id":     facilityID,
		"date":            date,
		"available_slots": slots,
	})
}

// ResetSession handles POST /v1/session/reset, the logout teardown: it
// clears the reservation list and favorite set, both in memory and in
// the backing store.
func (h *CustomerHandler) ResetSession(c echo.Context) error {
	if err := h.Store.Reset(c.Request().Context()); err != nil {
		return storeErrorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
