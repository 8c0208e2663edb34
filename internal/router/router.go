package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/canchapp/cancha-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/canchapp/cancha-reservation/internal/middleware" // import middleware for owner authentication
)

// RegisterRoutes registers routes that do not belong to any group on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint is used by load balancers and monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers unauthenticated browse endpoints.  The
// provided PublicHandler returns sanitized facility data; the optional
// cache middleware fronts these read-only routes so repeated browsing
// does not hit the database.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Expose the facility list; ?q= searches name and address.
	g.GET("/facilities", p.GetFacilities)
	// Facility detail by id.
	g.GET("/facilities/:id", p.GetFacility)
	// The facility's full published slot catalog, independent of date.
	g.GET("/facilities/:id/slots", p.GetFacilitySlots)
}

// RegisterCustomer registers the mobile session surface: reservations,
// availability, favorites and the logout teardown.  These routes are
// not cached; every response must reflect the latest mutation.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler) {
	g := e.Group("/v1")
	g.POST("/reservations", h.CreateReservation)
	g.GET("/reservations", h.ListReservations)
	g.DELETE("/reservations/:id", h.CancelReservation)
	g.GET("/facilities/:id/availability", h.GetAvailability)
	g.POST("/facilities/:id/favorite", h.ToggleFavorite)
	g.GET("/favorites", h.ListFavorites)
	g.POST("/session/reset", h.ResetSession)
}

// RegisterOwner registers facility management and statistics endpoints
// behind the OwnerAuth middleware.  Tokens are issued by the hosted
// auth provider and verified here with the shared secret.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, ownerSecret string) {
	g := e.Group("/v1/owner")
	g.Use(middleware.OwnerAuth(ownerSecret))
	g.POST("/facilities", o.CreateFacility)
	g.GET("/facilities", o.ListFacilities)
	g.PUT("/facilities/:id", o.UpdateFacility)
	g.DELETE("/facilities/:id", o.DeleteFacility)
	g.PUT("/facilities/:id/slots", o.ReplaceSlots)
	g.GET("/stats", o.GetStats)
}
