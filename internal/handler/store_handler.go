package handler

import (
	"net/http"
	"strconv"

	"refurbstore/internal/middleware"
	"refurbstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Guest storefront API under /store: catalog, cart, checkout, order lookup.
type StoreHandler struct {
	laptops *usecase.LaptopUsecase
	images  *usecase.ImageUsecase
	carts   *usecase.CartUsecase
	orders  *usecase.OrderUsecase
}

func NewStoreHandler(
	laptops *usecase.LaptopUsecase,
	images *usecase.ImageUsecase,
	carts *usecase.CartUsecase,
	orders *usecase.OrderUsecase,
) *StoreHandler {
	return &StoreHandler{laptops: laptops, images: images, carts: carts, orders: orders}
}

func (h *StoreHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/laptops", h.listCatalog)
	g.GET("/laptops/:id", h.catalogDetail)
	g.GET("/laptops/:id/image", h.primaryImage)
	g.GET("/laptops/:id/images/:image_id", h.imageByID)

	g.GET("/cart", h.getCart)
	g.POST("/cart/items", h.addToCart)
	g.DELETE("/cart/items/:laptop_id", h.removeFromCart)
	g.DELETE("/cart", h.clearCart)

	g.POST("/checkout", h.checkout)
	g.GET("/orders/:id", h.lookupOrder)
}

func cartSessionID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxCartSessionKey).(string)
	return id
}

func (h *StoreHandler) listCatalog(c echo.Context) error {
	items, err := h.laptops.ListCatalog(c.Request().Context(), usecase.LaptopListInput{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *StoreHandler) catalogDetail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.laptops.GetCatalogDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// primaryImage serves the cover image bytes: the primary if set, else any.
func (h *StoreHandler) primaryImage(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	img, err := h.images.GetPrimaryOrAny(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, img.ImageMimetype, img.ImageData)
}

func (h *StoreHandler) imageByID(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	imageID, ok := parseID(c, "image_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	img, err := h.images.GetByID(c.Request().Context(), id, imageID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, img.ImageMimetype, img.ImageData)
}

func (h *StoreHandler) getCart(c echo.Context) error {
	out, err := h.carts.Get(c.Request().Context(), cartSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type addToCartRequest struct {
	LaptopID int64 `json:"laptop_id"`
}

func (h *StoreHandler) addToCart(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	out, err := h.carts.Add(c.Request().Context(), cartSessionID(c), req.LaptopID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) removeFromCart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("laptop_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid laptop_id"})
	}

	out, err := h.carts.Remove(c.Request().Context(), cartSessionID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StoreHandler) clearCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.carts.Clear(cartSessionID(c)))
}

type checkoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (h *StoreHandler) checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	out, err := h.orders.Checkout(c.Request().Context(), cartSessionID(c), usecase.CheckoutInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// lookupOrder lets a guest check order status with order id plus the
// contact email used at checkout.
func (h *StoreHandler) lookupOrder(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orders.Lookup(c.Request().Context(), id, c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
