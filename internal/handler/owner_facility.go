package handler // handler package contains owner-specific facility handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/canchapp/cancha-reservation/internal/model"
	"github.com/canchapp/cancha-reservation/internal/repository"
	"github.com/canchapp/cancha-reservation/internal/store"
)

// OwnerHandler bundles the dependencies owners need to manage their
// facilities and read booking statistics.  Every route it serves sits
// behind the OwnerAuth middleware, so handlers can rely on owner_id
// being present in the context.
type OwnerHandler struct {
	Facilities *repository.FacilityRepo // facility persistence
	Store      *store.Store             // reservation state, read-only here for stats
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(facilities *repository.FacilityRepo, st *store.Store) *OwnerHandler {
	if facilities == nil || st == nil {
		panic("nil dependency passed to NewOwnerHandler")
	}
	return &OwnerHandler{Facilities: facilities, Store: st}
}

// facilityBody is the JSON payload shared by create and update.
type facilityBody struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Rating   float64 `json:"rating"`
	ImageRef string  `json:"image_ref"`
}

func (b *facilityBody) validate() (string, bool) {
	b.Name = strings.TrimSpace(b.Name)
	b.Address = strings.TrimSpace(b.Address)
	if b.Name == "" {
		return "name is required", false
	}
	if b.Address == "" {
		return "address is required", false
	}
	if b.Rating < 0 || b.Rating > 10 {
		return "rating must be between 0 and 10", false
	}
	return "", true
}

// CreateFacility handles POST /v1/owner/facilities and creates a new
// facility for the authenticated owner.
func (h *OwnerHandler) CreateFacility(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body facilityBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if reason, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
	}
	fac := &model.Facility{
		OwnerID:  ownerID,
		Name:     body.Name,
		Address:  body.Address,
		Rating:   body.Rating,
		ImageRef: body.ImageRef,
	}
	if err := h.Facilities.Create(c.Request().Context(), fac); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create facility"})
	}
	return c.JSON(http.StatusCreated, fac)
}

// ListFacilities handles GET /v1/owner/facilities and returns all
// facilities owned by the authenticated user.
func (h *OwnerHandler) ListFacilities(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Facilities.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateFacility handles PUT /v1/owner/facilities/:id and rewrites the
// facility's mutable fields.
func (h *OwnerHandler) UpdateFacility(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	var body facilityBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if reason, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason})
	}
	updated, err := h.Facilities.Update(c.Request().Context(), id, ownerID, body.Name, body.Address, body.Rating, body.ImageRef)
	if err != nil {
		return ownerRepoErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteFacility handles DELETE /v1/owner/facilities/:id.  The facility
// and its slot catalog are removed; existing reservations keep their
// facility id for history.
func (h *OwnerHandler) DeleteFacility(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Facilities.Delete(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return ownerRepoErrorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceSlots handles PUT /v1/owner/facilities/:id/slots.  The body
// carries the complete new slot catalog; labels must be distinct HH:MM
// times and are kept in the order provided.
func (h *OwnerHandler) ReplaceSlots(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Slots []string `json:"slots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	seen := make(map[string]struct{}, len(body.Slots))
	for _, label := range body.Slots {
		if _, err := time.Parse("15:04", label); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot " + label + " is not a valid HH:MM time"})
		}
		if _, dup := seen[label]; dup {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot " + label + " appears more than once"})
		}
		seen[label] = struct{}{}
	}
	if err := h.Facilities.ReplaceSlots(c.Request().Context(), c.Param("id"), ownerID, body.Slots); err != nil {
		return ownerRepoErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": body.Slots})
}

// ownerRepoErrorResponse maps facility repository sentinels onto HTTP
// responses for the owner endpoints.
func ownerRepoErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrFacilityNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
