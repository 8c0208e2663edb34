package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchapp/cancha-reservation/internal/utils"
)

const testSecret = "unit-test-secret"

func newAuthServer(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("/owner", OwnerAuth(secret))
	g.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"owner_id": c.Get("owner_id")})
	})
	return e
}

func request(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/owner/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOwnerAuth(t *testing.T) {
	e := newAuthServer(testSecret)

	t.Run("ValidToken", func(t *testing.T) {
		tok, err := utils.NewOwnerToken(testSecret, "owner-42", 15)
		require.NoError(t, err)

		rec := request(e, "Bearer "+tok.Token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "owner-42")
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rec := request(e, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NotBearer", func(t *testing.T) {
		rec := request(e, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		tok, err := utils.NewOwnerToken("other-secret", "owner-42", 15)
		require.NoError(t, err)

		rec := request(e, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tok, err := utils.NewOwnerToken(testSecret, "owner-42", -5)
		require.NoError(t, err)

		rec := request(e, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongRole", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": "user-7", "role": "customer"}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := request(e, "Bearer "+raw)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		claims := jwt.MapClaims{"role": "owner"}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := request(e, "Bearer "+raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
