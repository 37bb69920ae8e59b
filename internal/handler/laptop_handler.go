package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"refurbstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Admin inventory API under /admin/laptops.
type LaptopHandler struct {
	uc *usecase.LaptopUsecase
}

func NewLaptopHandler(uc *usecase.LaptopUsecase) *LaptopHandler {
	return &LaptopHandler{uc: uc}
}

func (h *LaptopHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/laptops", h.list)
	g.GET("/laptops/sold", h.listSold)
	g.GET("/laptops/export", h.exportCSV)
	g.GET("/laptops/:id", h.detail)
	g.POST("/laptops", h.create)
	g.PUT("/laptops/:id", h.update)
	g.DELETE("/laptops/:id", h.delete)
	g.POST("/laptops/:id/duplicate", h.duplicate)
	g.POST("/laptops/:id/sold", h.markSold)
	g.POST("/laptops/:id/available", h.markAvailable)
	g.POST("/laptops/bulk/delete", h.bulkDelete)
	g.POST("/laptops/bulk/duplicate", h.bulkDuplicate)
	g.POST("/laptops/:id/parts/:part_id", h.installPart)
	g.DELETE("/laptops/:id/parts/:part_id", h.uninstallPart)
}

func (h *LaptopHandler) list(c echo.Context) error {
	out, err := h.uc.ListAvailable(c.Request().Context(), usecase.LaptopListInput{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LaptopHandler) listSold(c echo.Context) error {
	out, err := h.uc.ListSold(c.Request().Context(), usecase.LaptopListInput{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LaptopHandler) detail(c echo.Context) error {
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

func laptopInputFromForm(c echo.Context) usecase.LaptopInput {
	return usecase.LaptopInput{
		LaptopName:    c.FormValue("laptop_name"),
		CPU:           c.FormValue("cpu"),
		RAM:           c.FormValue("ram"),
		Storage:       c.FormValue("storage"),
		OS:            c.FormValue("os"),
		Notes:         c.FormValue("notes"),
		PriceBought:   c.FormValue("price_bought"),
		PriceToSell:   c.FormValue("price_to_sell"),
		Fees:          c.FormValue("fees"),
		WarrantyStart: c.FormValue("warranty_start"),
		WarrantyDays:  c.FormValue("warranty_days"),
		Sold:          c.FormValue("sold") == "true" || c.FormValue("sold") == "on",
	}
}

func readUploads(files []*multipart.FileHeader) ([]usecase.ImageUpload, error) {
	ups := make([]usecase.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		ups = append(ups, usecase.ImageUpload{
			Name:     fh.Filename,
			Mimetype: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}
	return ups, nil
}

// create accepts a multipart form: laptop fields plus optional "images"
// file parts.
func (h *LaptopHandler) create(c echo.Context) error {
	in := laptopInputFromForm(c)

	var uploads []usecase.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		uploads, err = readUploads(form.File["images"])
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid upload"})
		}
	}

	created, err := h.uc.Create(c.Request().Context(), in, uploads)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *LaptopHandler) update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Update(c.Request().Context(), id, laptopInputFromForm(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) duplicate(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	copied, err := h.uc.Duplicate(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, copied)
}

func (h *LaptopHandler) markSold(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkSold(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) markAvailable(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.MarkAvailable(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type bulkRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *LaptopHandler) bulkDelete(c echo.Context) error {
	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	if err := h.uc.BulkDelete(c.Request().Context(), req.IDs); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) bulkDuplicate(c echo.Context) error {
	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	if err := h.uc.BulkDuplicate(c.Request().Context(), req.IDs); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) installPart(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	partID, ok := parseID(c, "part_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.InstallPart(c.Request().Context(), id, partID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) uninstallPart(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	partID, ok := parseID(c, "part_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.UninstallPart(c.Request().Context(), id, partID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LaptopHandler) exportCSV(c echo.Context) error {
	data, err := h.uc.ExportCSV(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="laptops.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
