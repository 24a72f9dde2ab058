package server

import (
	"github.com/labstack/echo/v4"

	"shopapi/internal/handler"
)

func RegisterRoutes(e *echo.Echo, userH *handler.UserHandler, productH *handler.ProductHandler, orderH *handler.OrderHandler) {
	userH.RegisterRoutes(e)
	productH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)
}
