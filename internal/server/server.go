package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"shopapi/internal/handler"
)

// New はルーティング済みのechoを組み立てる。
func New(userH *handler.UserHandler, productH *handler.ProductHandler, orderH *handler.OrderHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// リクエストIDはuuidで振る
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to the API!")
	})

	RegisterRoutes(e, userH, productH, orderH)
	return e
}

func Start(addr string, userH *handler.UserHandler, productH *handler.ProductHandler, orderH *handler.OrderHandler) error {
	return New(userH, productH, orderH).Start(addr)
}
