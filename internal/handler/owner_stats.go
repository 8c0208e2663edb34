package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/canchapp/cancha-reservation/internal/store"
)

// FacilityStats aggregates reservation activity for one facility.  The
// per-day series feeds the owner dashboard's booking chart; slot counts
// weight a multi-slot reservation by the hours it actually covers.
type FacilityStats struct {
	FacilityID string         `json:"facility_id"`
	Name       string         `json:"name"`
	Confirmed  int            `json:"confirmed"`
	Cancelled  int            `json:"cancelled"`
	SlotHours  int            `json:"slot_hours"`
	ByDate     map[string]int `json:"by_date"`
}

// GetStats handles GET /v1/owner/stats.  It aggregates the reservation
// store over the authenticated owner's facilities: totals by status,
// booked slot-hours, and a per-date booking count for charting.
func (h *OwnerHandler) GetStats(c echo.Context) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	facilities, err := h.Facilities.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	byFacility := make(map[string]*FacilityStats, len(facilities))
	order := make([]string, 0, len(facilities))
	for i := range facilities {
		f := &facilities[i]
		byFacility[f.ID] = &FacilityStats{FacilityID: f.ID, Name: f.Name, ByDate: map[string]int{}}
		order = append(order, f.ID)
	}

	for _, r := range h.Store.ListReservations(store.FilterAll) {
		st, ok := byFacility[r.FacilityID]
		if !ok {
			continue // reservation for another owner's facility
		}
		if r.Cancelled() {
			st.Cancelled++
			continue
		}
		st.Confirmed++
		st.SlotHours += len(r.TimeSlots)
		st.ByDate[r.Date]++
	}

	sort.Strings(order)
	items := make([]FacilityStats, 0, len(order))
	for _, id := range order {
		items = append(items, *byFacility[id])
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
