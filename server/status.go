package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/kernel"
)

type status struct {
	Status          string             `json:"status"`
	Time            time.Time          `json:"time"`
	Uptime          string             `json:"uptime"`
	GitHash         string             `json:"gitHash"`
	ApplicationName string             `json:"applicationName"`
	Environment     kernel.Environment `json:"environment"`
	Web             kernel.HTTP        `json:"web"`
	Store           storeStatus        `json:"store"`
}

type storeStatus struct {
	kernel.Store

	Entries int    `json:"entries"`
	Status  string `json:"status"`
}

func (c *Container) status(r *http.Request) status {
	storeOnline := "online"

	entries, err := c.Repository.Count(r.Context())
	if err != nil {
		storeOnline = "err: " + err.Error()
	}

	return status{
		Status:          "online",
		Time:            time.Now(),
		Uptime:          time.Since(c.startedAt).Round(time.Second).String(),
		GitHash:         gitHash(),
		ApplicationName: c.Config.ApplicationName,
		Environment:     c.Config.Environment,
		Web:             c.Config.HTTP,
		Store:           storeStatus{Store: c.Config.Store, Entries: entries, Status: storeOnline},
	}
}

func (c *Container) statusHandler(ctx echo.Context) error {
	ctx.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return ctx.JSON(http.StatusOK, c.status(ctx.Request())) //nolint:wrapcheck // return the echo error unchanged
}
