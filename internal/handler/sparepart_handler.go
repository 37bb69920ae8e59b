package handler

import (
	"net/http"

	"refurbstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Admin spare-part stock API under /admin/spareparts.
type SparePartHandler struct {
	uc *usecase.SparePartUsecase
}

func NewSparePartHandler(uc *usecase.SparePartUsecase) *SparePartHandler {
	return &SparePartHandler{uc: uc}
}

func (h *SparePartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/spareparts", h.list)
	g.GET("/spareparts/:id", h.detail)
	g.POST("/spareparts", h.create)
	g.PUT("/spareparts/:id", h.update)
	g.DELETE("/spareparts/:id", h.delete)
}

func (h *SparePartHandler) list(c echo.Context) error {
	parts, err := h.uc.List(c.Request().Context(), usecase.SparePartListInput{
		PartType:    c.QueryParam("part_type"),
		StorageType: c.QueryParam("storage_type"),
		RAMType:     c.QueryParam("ram_type"),
		RAMSpeed:    c.QueryParam("ram_speed"),
		SortBy:      c.QueryParam("sort_by"),
		Order:       c.QueryParam("order"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, parts)
}

func (h *SparePartHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func sparePartInputFromForm(c echo.Context) usecase.SparePartInput {
	return usecase.SparePartInput{
		PartType:    c.FormValue("part_type"),
		StorageType: c.FormValue("storage_type"),
		RAMType:     c.FormValue("ram_type"),
		RAMSpeed:    c.FormValue("ram_speed"),
		Capacity:    c.FormValue("capacity"),
		Notes:       c.FormValue("notes"),
		Quantity:    c.FormValue("quantity"),
	}
}

func (h *SparePartHandler) create(c echo.Context) error {
	p, err := h.uc.Create(c.Request().Context(), sparePartInputFromForm(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *SparePartHandler) update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Update(c.Request().Context(), id, sparePartInputFromForm(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SparePartHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
