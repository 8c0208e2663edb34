// This file defines handlers for the public browsing API.  These routes
// let unauthenticated users browse and search facilities and inspect a
// facility's slot catalog before reserving.  Sensitive fields (owner
// ids, timestamps) are filtered from responses.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/canchapp/cancha-reservation/internal/model"
	"github.com/canchapp/cancha-reservation/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.  It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
	Facilities *repository.FacilityRepo // provides access to facility data
}

// PublicFacility represents a facility exposed via the public API.  It
// contains only safe fields.
type PublicFacility struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Rating   float64 `json:"rating"`
	ImageRef string  `json:"image_ref,omitempty"`
}

func publicFacility(f *model.Facility) PublicFacility {
	return PublicFacility{
		ID:       f.ID,
		Name:     f.Name,
		Address:  f.Address,
		Rating:   f.Rating,
		ImageRef: f.ImageRef,
	}
}

// GetFacilities handles GET /v1/facilities.  Without a query it lists
// every facility best rated first; with ?q= it searches name and
// address.  Response JSON contains an "items" array of PublicFacility.
func (h *PublicHandler) GetFacilities(c echo.Context) error {
	ctx := c.Request().Context()
	facilities, err := h.Facilities.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicFacility, 0, len(facilities))
	for i := range facilities {
		out = append(out, publicFacility(&facilities[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetFacility handles GET /v1/facilities/:id and returns the sanitized
// detail of one facility.
func (h *PublicHandler) GetFacility(c echo.Context) error {
	ctx := c.Request().Context()
	fac, err := h.Facilities.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": publicFacility(fac)})
}

// GetFacilitySlots handles GET /v1/facilities/:id/slots and returns the
// facility's published slot catalog in order.  Availability for a
// concrete date is a separate endpoint; this is the full offering.
func (h *PublicHandler) GetFacilitySlots(c echo.Context) error {
	ctx := c.Request().Context()
	slots, err := h.Facilities.ListSlots(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": slots})
}
