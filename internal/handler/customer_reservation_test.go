package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchapp/cancha-reservation/internal/model"
	"github.com/canchapp/cancha-reservation/internal/repository"
	"github.com/canchapp/cancha-reservation/internal/storage"
	"github.com/canchapp/cancha-reservation/internal/store"
)

// stubCatalog satisfies store.Catalog without a database.
type stubCatalog struct {
	facilities map[string]*model.Facility
	slots      map[string][]string
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		facilities: map[string]*model.Facility{
			"f1": {ID: "f1", Name: "Cancha Central", Address: "Av. Libertador 100", Rating: 8.5},
		},
		slots: map[string][]string{
			"f1": {"18:00", "19:00", "20:00"},
		},
	}
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	f, ok := s.facilities[id]
	if !ok {
		return nil, repository.ErrFacilityNotFound
	}
	return f, nil
}

func (s *stubCatalog) ListSlots(ctx context.Context, facilityID string) ([]string, error) {
	if _, ok := s.facilities[facilityID]; !ok {
		return nil, repository.ErrFacilityNotFound
	}
	return s.slots[facilityID], nil
}

func newCustomerHandler(t *testing.T) *CustomerHandler {
	t.Helper()
	catalog := newStubCatalog()
	st := store.New(storage.NewMemoryAdapter(), catalog)
	require.NoError(t, st.Load(context.Background()))
	return NewCustomerHandler(st, catalog)
}

// futureDate returns a date string days from now, since reservations in
// the past are rejected.
func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(model.DateLayout)
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newCustomerServer(t *testing.T) (*echo.Echo, *CustomerHandler) {
	t.Helper()
	h := newCustomerHandler(t)
	e := echo.New()
	e.POST("/v1/reservations", h.CreateReservation)
	e.GET("/v1/reservations", h.ListReservations)
	e.DELETE("/v1/reservations/:id", h.CancelReservation)
	e.GET("/v1/facilities/:id/availability", h.GetAvailability)
	e.POST("/v1/facilities/:id/favorite", h.ToggleFavorite)
	e.GET("/v1/favorites", h.ListFavorites)
	e.POST("/v1/session/reset", h.ResetSession)
	return e, h
}

func TestCreateReservationEndpoint(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		e, _ := newCustomerServer(t)
		body := `{"facility_id":"f1","date":"` + futureDate(1) + `","time_slots":["18:00","19:00"]}`
		rec := doJSON(e, http.MethodPost, "/v1/reservations", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var out struct {
			Reservation model.Reservation `json:"reservation"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.NotEmpty(t, out.Reservation.ID)
		assert.Equal(t, model.StatusConfirmed, out.Reservation.Status)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		e, _ := newCustomerServer(t)
		rec := doJSON(e, http.MethodPost, "/v1/reservations", `{"facility_id":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownFacility", func(t *testing.T) {
		e, _ := newCustomerServer(t)
		body := `{"facility_id":"ghost","date":"` + futureDate(1) + `","time_slots":["18:00"]}`
		rec := doJSON(e, http.MethodPost, "/v1/reservations", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown facility")
	})

	t.Run("ConflictingSlots", func(t *testing.T) {
		e, _ := newCustomerServer(t)
		body := `{"facility_id":"f1","date":"` + futureDate(1) + `","time_slots":["18:00"]}`
		rec := doJSON(e, http.MethodPost, "/v1/reservations", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(e, http.MethodPost, "/v1/reservations", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already booked")
	})
}

func TestListReservationsEndpoint(t *testing.T) {
	e, _ := newCustomerServer(t)
	body := `{"facility_id":"f1","date":"` + futureDate(1) + `","time_slots":["18:00"]}`
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/reservations", body).Code)

	t.Run("DefaultIsAll", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/reservations", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Items []model.Reservation `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Len(t, out.Items, 1)
	})

	t.Run("UpcomingFilter", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/reservations?filter=upcoming", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("InvalidFilter", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/reservations?filter=bogus", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelReservationEndpoint(t *testing.T) {
	e, h := newCustomerServer(t)
	body := `{"facility_id":"f1","date":"` + futureDate(1) + `","time_slots":["18:00"]}`
	rec := doJSON(e, http.MethodPost, "/v1/reservations", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Reservation model.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	t.Run("NoContentAndMarked", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/v1/reservations/"+created.Reservation.ID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		items := h.Store.ListReservations(store.FilterCancelled)
		require.Len(t, items, 1)
		assert.Equal(t, created.Reservation.ID, items[0].ID)
	})

	t.Run("SecondCancelStillSucceeds", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/v1/reservations/"+created.Reservation.ID, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("UnknownID", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/v1/reservations/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAvailabilityEndpoint(t *testing.T) {
	e, _ := newCustomerServer(t)
	date := futureDate(1)
	body := `{"facility_id":"f1","date":"` + date + `","time_slots":["19:00"]}`
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/reservations", body).Code)

	t.Run("BookedSlotExcluded", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/facilities/f1/availability?date="+date, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			AvailableSlots []string `json:"available_slots"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, []string{"18:00", "20:00"}, out.AvailableSlots)
	})

	t.Run("UnknownFacility", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/facilities/ghost/availability?date="+date, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/v1/facilities/f1/availability?date=someday", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFavoritesEndpoints(t *testing.T) {
	e, _ := newCustomerServer(t)

	t.Run("ToggleOnAndOff", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/v1/facilities/f1/favorite", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"favorited":true`)

		rec = doJSON(e, http.MethodPost, "/v1/facilities/f1/favorite", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"favorited":false`)
	})

	t.Run("ListResolvesCatalogDetail", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/v1/facilities/f1/favorite", "").Code)
		// Favoriting an id missing from the catalog is allowed; it is
		// listed without detail.
		require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/v1/facilities/deleted/favorite", "").Code)

		rec := doJSON(e, http.MethodGet, "/v1/favorites", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Items []struct {
				FacilityID string          `json:"facility_id"`
				Facility   *PublicFacility `json:"facility"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out.Items, 2)
		assert.Equal(t, "deleted", out.Items[0].FacilityID)
		assert.Nil(t, out.Items[0].Facility)
		assert.Equal(t, "f1", out.Items[1].FacilityID)
		require.NotNil(t, out.Items[1].Facility)
		assert.Equal(t, "Cancha Central", out.Items[1].Facility.Name)
	})
}

func TestResetSessionEndpoint(t *testing.T) {
	e, h := newCustomerServer(t)
	body := `{"facility_id":"f1","date":"` + futureDate(1) + `","time_slots":["18:00"]}`
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/v1/reservations", body).Code)
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/v1/facilities/f1/favorite", "").Code)

	rec := doJSON(e, http.MethodPost, "/v1/session/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, h.Store.ListReservations(store.FilterAll))
	assert.Empty(t, h.Store.Favorites())
}
