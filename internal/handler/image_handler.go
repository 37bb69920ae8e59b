package handler

import (
	"net/http"

	"refurbstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Admin image API under /admin/laptops/:id/images.
type ImageHandler struct {
	uc *usecase.ImageUsecase
}

func NewImageHandler(uc *usecase.ImageUsecase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

func (h *ImageHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/laptops/:id/images", h.upload)
	g.PUT("/laptops/:id/images/:image_id/primary", h.setPrimary)
	g.DELETE("/laptops/:id/images/:image_id", h.delete)
}

type uploadResponse struct {
	Stored  int `json:"stored"`
	Skipped int `json:"skipped"`
}

// upload takes one or more "images" file parts. Files failing the type
// allow-list are counted as skipped, not rejected.
func (h *ImageHandler) upload(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["images"]) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no images provided"})
	}

	uploads, err := readUploads(form.File["images"])
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid upload"})
	}

	isPrimary := c.FormValue("primary") == "true"

	var res uploadResponse
	for _, up := range uploads {
		added, err := h.uc.Add(c.Request().Context(), id, up, isPrimary && res.Stored == 0)
		if err != nil {
			return writeError(c, err)
		}
		if added {
			res.Stored++
		} else {
			res.Skipped++
		}
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *ImageHandler) setPrimary(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	imageID, ok := parseID(c, "image_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.SetPrimary(c.Request().Context(), id, imageID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ImageHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	imageID, ok := parseID(c, "image_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id, imageID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
