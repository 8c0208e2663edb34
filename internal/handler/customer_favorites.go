package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/canchapp/cancha-reservation/internal/repository"
)

// ToggleFavorite handles POST /v1/facilities/:id/favorite.  It adds the
// facility to the favorite set when absent and removes it when present,
// returning the resulting state.  Toggling twice restores the original
// set.
func (h *CustomerHandler) ToggleFavorite(c echo.Context) error {
	facilityID := c.Param("id")
	if facilityID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility id"})
	}
	favorited, err := h.Store.ToggleFavorite(c.Request().Context(), facilityID)
	if err != nil {
		return storeErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"facility_id": facilityID,
		"favorited":   favorited,
	})
}

// ListFavorites handles GET /v1/favorites.  Each favorited id is
// resolved against the catalog so the app can render facility cards
// directly; ids whose facility has since been deleted are returned
// without detail rather than dropped, so the set stays honest.
func (h *CustomerHandler) ListFavorites(c echo.Context) error {
	ctx := c.Request().Context()
	ids := h.Store.Favorites()
	type favorite struct {
		FacilityID string          `json:"facility_id"`
		Facility   *PublicFacility `json:"facility,omitempty"`
	}
	items := make([]favorite, 0, len(ids))
	for _, id := range ids {
		f := favorite{FacilityID: id}
		fac, err := h.Catalog.GetByID(ctx, id)
		if err == nil {
			pub := publicFacility(fac)
			f.Facility = &pub
		} else if !errors.Is(err, repository.ErrFacilityNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		items = append(items, f)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
