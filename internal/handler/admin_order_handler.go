package handler

import (
	"net/http"

	"refurbstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Admin order workflow API under /admin/orders.
type AdminOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.detail)
	g.POST("/orders/:id/confirm", h.confirm)
	g.POST("/orders/:id/start", h.start)
	g.POST("/orders/:id/finish", h.finish)
	g.POST("/orders/:id/undo", h.undo)
	g.POST("/orders/:id/reject", h.reject)
	g.DELETE("/orders/:id", h.delete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) transition(c echo.Context, fn func(c echo.Context, id int64) error) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := fn(c, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminOrderHandler) confirm(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id int64) error {
		return h.uc.Confirm(c.Request().Context(), id)
	})
}

func (h *AdminOrderHandler) start(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id int64) error {
		return h.uc.Start(c.Request().Context(), id)
	})
}

func (h *AdminOrderHandler) finish(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id int64) error {
		return h.uc.Finish(c.Request().Context(), id)
	})
}

func (h *AdminOrderHandler) undo(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id int64) error {
		return h.uc.Undo(c.Request().Context(), id)
	})
}

func (h *AdminOrderHandler) reject(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id int64) error {
		return h.uc.Reject(c.Request().Context(), id)
	})
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id int64) error {
		return h.uc.Delete(c.Request().Context(), id)
	})
}
