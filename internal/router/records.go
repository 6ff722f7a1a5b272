package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio/internal/handler"
	"github.com/deppfellow/portfolio/internal/model"
)

// registerRecordRoutes mounts the five record endpoints at
// /api/<Resource>. Resource names are case sensitive.
func registerRecordRoutes[T any, C model.CreateRequest[T], U model.UpdateRequest[T]](api *echo.Group, h *handler.RecordHandler[T, C, U]) {
	g := api.Group("/" + h.Resource())

	g.GET("", handler.Handle(h.List, http.StatusOK))
	g.GET("/:id", handler.Handle(h.Get, http.StatusOK))
	g.POST("", handler.Handle(h.Create, http.StatusCreated))
	g.PUT("/:id", handler.HandleNoContent(h.Update, http.StatusNoContent))
	g.DELETE("/:id", handler.HandleNoContent(h.Delete, http.StatusNoContent))
}
