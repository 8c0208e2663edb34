package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchapp/cancha-reservation/internal/repository"
)

func newPublicHandler(t *testing.T) (*PublicHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PublicHandler{Facilities: repository.NewFacilityRepo(db)}, mock
}

func publicContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetFacilitiesEndpoint(t *testing.T) {
	h, mock := newPublicHandler(t)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "address", "rating", "image_ref", "created_at", "updated_at"}).
		AddRow("f1", "owner-1", "Cancha Central", "Av. Libertador 100", 8.5, "img", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY rating DESC, name")).WillReturnRows(rows)

	c, rec := publicContext("/v1/facilities")
	require.NoError(t, h.GetFacilities(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cancha Central")
	// Owner identity never leaks into the public payload.
	assert.NotContains(t, rec.Body.String(), "owner-1")
}

func TestGetFacilityEndpoint(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		h, mock := newPublicHandler(t)
		mock.ExpectQuery("SELECT .+ FROM facilities WHERE id").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "address", "rating", "image_ref", "created_at", "updated_at"}))

		c, rec := publicContext("/v1/facilities/ghost")
		c.SetParamNames("id")
		c.SetParamValues("ghost")
		require.NoError(t, h.GetFacility(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
