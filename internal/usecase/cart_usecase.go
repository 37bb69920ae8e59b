package usecase

import (
	"context"
	"net/http"

	repo "refurbstore/internal/repository"
	"refurbstore/internal/session"

	"github.com/rs/zerolog/log"
)

// CartUsecase works on the per-session cart. The cart is a small ordered
// set of laptop ids, never persisted to the store.
type CartUsecase struct {
	carts      *session.Store
	laptopRepo repo.LaptopRepository
}

func NewCartUsecase(carts *session.Store, laptopRepo repo.LaptopRepository) *CartUsecase {
	return &CartUsecase{carts: carts, laptopRepo: laptopRepo}
}

type CartItemResponse struct {
	LaptopID     int64   `json:"laptop_id"`
	LaptopName   string  `json:"laptop_name"`
	SerialNumber string  `json:"serial_number"`
	Price        float64 `json:"price"`
	Sold         bool    `json:"sold"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

// Get resolves the cart against live laptop data. Laptops deleted since
// they were carted are dropped; laptops sold in the meantime stay visible
// with the Sold flag so the storefront can warn before checkout.
func (u *CartUsecase) Get(ctx context.Context, sessionID string) (CartResponse, error) {
	ids := u.carts.Get(sessionID)

	items := make([]CartItemResponse, 0, len(ids))
	var total float64

	for _, id := range ids {
		l, err := u.laptopRepo.FindByID(ctx, id)
		if err == repo.ErrNotFound {
			u.carts.Remove(sessionID, id)
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items = append(items, CartItemResponse{
			LaptopID:     l.ID,
			LaptopName:   l.LaptopName,
			SerialNumber: l.SerialNumber,
			Price:        l.PriceToSell,
			Sold:         l.Sold,
		})
		if !l.Sold {
			total += l.PriceToSell
		}
	}

	return CartResponse{Items: items, Total: total}, nil
}

// Add validates the laptop exists and is still available. An id already in
// the cart is a warned no-op, not an error.
func (u *CartUsecase) Add(ctx context.Context, sessionID string, laptopID int64) (CartResponse, error) {
	if laptopID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid laptop_id")
	}

	l, err := u.laptopRepo.FindByID(ctx, laptopID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if l.Sold {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "item unavailable")
	}

	if !u.carts.Add(sessionID, laptopID) {
		log.Warn().Str("session", sessionID).Int64("laptop_id", laptopID).Msg("laptop already in cart")
	}

	return u.Get(ctx, sessionID)
}

func (u *CartUsecase) Remove(ctx context.Context, sessionID string, laptopID int64) (CartResponse, error) {
	if laptopID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid laptop_id")
	}
	u.carts.Remove(sessionID, laptopID)
	return u.Get(ctx, sessionID)
}

// Clear empties the cart without touching the session.
func (u *CartUsecase) Clear(sessionID string) CartResponse {
	u.carts.Clear(sessionID)
	return CartResponse{Items: []CartItemResponse{}}
}
