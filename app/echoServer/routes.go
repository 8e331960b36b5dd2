package echoServer

import (
	"github.com/labstack/echo/v4"

	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	// user management carries no caller identity
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.PATCH("/:userId", c.User.Update)
	users.GET("/:userId", c.User.Get)
	users.DELETE("/:userId", c.User.Delete)
	users.GET("", c.User.List)

	items := e.Group("/items", Identity())
	items.POST("", c.Item.Create)
	items.PATCH("/:itemId", c.Item.Update)
	items.GET("/search", c.Item.Search)
	items.GET("/:itemId", c.Item.Get)
	items.GET("", c.Item.ListOwn)
	items.POST("/:itemId/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", Identity())
	bookings.POST("", c.Booking.Create)
	bookings.PATCH("/:bookingId", c.Booking.UpdateStatus)
	bookings.GET("/owner", c.Booking.ListForOwner)
	bookings.GET("/:bookingId", c.Booking.Get)
	bookings.GET("", c.Booking.ListForBooker)

	requests := e.Group("/requests", Identity())
	requests.POST("", c.Request.Create)
	requests.GET("/all", c.Request.ListOthers)
	requests.GET("/:requestId", c.Request.Get)
	requests.GET("", c.Request.ListOwn)
}
