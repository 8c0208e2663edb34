package handler // handler defines http handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/canchapp/cancha-reservation/internal/store"
)

// getOwnerID extracts the owner identifier placed in the context by the
// OwnerAuth middleware.
func getOwnerID(c echo.Context) (string, error) {
	if s, ok := c.Get("owner_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing owner_id in context")
}

// storeErrorResponse maps the store's typed errors onto HTTP responses:
// validation failures are 400 and recoverable by re-prompting, missing
// records are 404, and persistence failures are 503 so clients know the
// operation is safe to retry.  Anything else is an opaque 500.
func storeErrorResponse(c echo.Context, err error) error {
	var ve *store.ValidationError
	var nfe *store.NotFoundError
	var pe *store.PersistenceError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.As(err, &nfe):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nfe.Error()})
	case errors.As(err, &pe):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage temporarily unavailable, please retry"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
