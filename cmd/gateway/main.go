// ShareIt gateway: validates and forwards requests to the API server.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	"shareit/config"
	"shareit/gateway"
	"shareit/util/httpx"
)

func main() {
	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	g := &gateway.Gateway{
		ServerURL: cfg.ServerURL,
		Client:    httpx.Client(),
		V:         validator.New(),
		Log:       log,
	}

	e := echo.New()
	echoServer.RegisterMiddlewares(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	})

	gateway.Register(e, g)

	slog.Info("starting gateway", "port", cfg.Port, "server", cfg.ServerURL, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
