// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/handler"
)

// Handlers bundles every handler the router needs. All fields are required.
type Handlers struct {
	Booking         *handler.BookingHandler
	User            *handler.UserHandler
	MachineType     *handler.MachineTypeHandler
	Machine         *handler.MachineHandler
	BuildingAddress *handler.BuildingAddressHandler
	MachineLocation *handler.MachineLocationHandler
	UserAddress     *handler.UserAddressHandler
}

// RegisterRoutes registers the health check on the provided Echo instance.
// Load balancers and monitoring probe this endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers every /v1 endpoint. Read endpoints accept the extra
// middleware (cache, rate limiter) so mutations never hit the response cache.
func RegisterAPI(e *echo.Echo, h Handlers, readMW ...echo.MiddlewareFunc) {
	v1 := e.Group("/v1")

	bookings := v1.Group("/bookings")
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.GetByQuery, readMW...)
	bookings.GET("/:id", h.Booking.Get, readMW...)
	bookings.DELETE("/:id", h.Booking.Cancel)

	users := v1.Group("/users")
	users.POST("", h.User.Create)
	users.GET("/:id", h.User.Get, readMW...)
	users.PATCH("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	types := v1.Group("/machine-types")
	types.POST("", h.MachineType.Create)
	types.GET("/:id", h.MachineType.Get, readMW...)
	types.PATCH("/:id", h.MachineType.Update)
	types.DELETE("/:id", h.MachineType.Delete)

	machines := v1.Group("/machines")
	machines.POST("", h.Machine.Create)
	machines.GET("/:id", h.Machine.Get, readMW...)
	machines.PATCH("/:id", h.Machine.Update)
	machines.DELETE("/:id", h.Machine.Delete)

	buildings := v1.Group("/building-addresses")
	buildings.POST("", h.BuildingAddress.Create)
	buildings.GET("/:id", h.BuildingAddress.Get, readMW...)
	buildings.PATCH("/:id", h.BuildingAddress.Update)
	buildings.DELETE("/:id", h.BuildingAddress.Delete)

	locations := v1.Group("/machine-locations")
	locations.POST("", h.MachineLocation.Create)
	locations.GET("", h.MachineLocation.GetByQuery, readMW...)
	locations.GET("/:id", h.MachineLocation.Get, readMW...)
	locations.PATCH("/:id", h.MachineLocation.Update)
	locations.DELETE("/:id", h.MachineLocation.Delete)

	addresses := v1.Group("/user-addresses")
	addresses.POST("", h.UserAddress.Create)
	addresses.GET("", h.UserAddress.GetByQuery, readMW...)
	addresses.GET("/:id", h.UserAddress.Get, readMW...)
	addresses.DELETE("/:id", h.UserAddress.Delete)
}
