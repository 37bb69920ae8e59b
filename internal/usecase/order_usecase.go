package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"refurbstore/internal/domain/model"
	repo "refurbstore/internal/repository"
	"refurbstore/internal/session"

	"github.com/rs/zerolog/log"
)

// OrderUsecase owns the order state machine:
//
//	unconfirmed --confirm--> confirmed --start--> in_progress --finish--> completed
//
// Reject hard-deletes an unconfirmed order. Undo moves any non-completed
// order back to unconfirmed. Laptops flip to sold only on finish; delete is
// the compensating action that flips them back.
type OrderUsecase struct {
	tx    repo.TransactionManager
	carts *session.Store
}

func NewOrderUsecase(tx repo.TransactionManager, carts *session.Store) *OrderUsecase {
	return &OrderUsecase{tx: tx, carts: carts}
}

type CheckoutInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

type OrderItemOutput struct {
	LaptopID      int64   `json:"laptop_id"`
	Quantity      int64   `json:"quantity"`
	PriceSnapshot float64 `json:"price_snapshot"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	GuestName     string            `json:"guest_name"`
	GuestEmail    string            `json:"guest_email"`
	GuestPhone    string            `json:"guest_phone"`
	Status        string            `json:"status"`
	TotalAmount   float64           `json:"total_amount"`
	Notes         string            `json:"notes"`
	CreatedDate   time.Time         `json:"created_date"`
	ConfirmedDate *time.Time        `json:"confirmed_date,omitempty"`
	CompletedDate *time.Time        `json:"completed_date,omitempty"`
	Items         []OrderItemOutput `json:"items"`
}

// Checkout re-validates every carted laptop against live availability. Any
// laptop gone or sold since carting fails the whole checkout, sending the
// guest back to the cart instead of silently dropping items. Laptops are
// NOT marked sold here: reserving stock for an unconfirmed order would
// block other guests.
func (u *OrderUsecase) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (OrderOutput, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	ids := u.carts.Get(sessionID)
	if len(ids) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		laptops := make([]model.Laptop, 0, len(ids))
		for _, id := range ids {
			l, err := r.Laptops().FindByID(ctx, id)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusConflict, "items unavailable")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if l.Sold {
				return NewHTTPError(http.StatusConflict, "items unavailable")
			}
			laptops = append(laptops, l)
		}

		var total float64
		items := make([]model.OrderItem, 0, len(laptops))
		for _, l := range laptops {
			total += l.PriceToSell
			items = append(items, model.OrderItem{
				LaptopID:      l.ID,
				Quantity:      1,
				PriceSnapshot: l.PriceToSell,
			})
		}

		order := model.Order{
			GuestName:   name,
			GuestEmail:  email,
			GuestPhone:  strings.TrimSpace(in.Phone),
			Status:      model.OrderStatusUnconfirmed,
			TotalAmount: total,
			Notes:       in.Notes,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// Clearing only after commit keeps the cart intact when checkout fails.
	u.carts.Clear(sessionID)

	log.Info().Int64("order_id", out.ID).Float64("total", out.TotalAmount).Int("items", len(out.Items)).Msg("order created")
	return out, nil
}

// Confirm: unconfirmed -> confirmed, stamping confirmed_date.
func (u *OrderUsecase) Confirm(ctx context.Context, orderID int64) error {
	return u.transition(ctx, orderID, func(o model.Order) (model.OrderStatus, *time.Time, *time.Time, error) {
		if o.Status != model.OrderStatusUnconfirmed {
			return "", nil, nil, NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}
		now := time.Now()
		return model.OrderStatusConfirmed, &now, nil, nil
	})
}

// Start: confirmed -> in_progress.
func (u *OrderUsecase) Start(ctx context.Context, orderID int64) error {
	return u.transition(ctx, orderID, func(o model.Order) (model.OrderStatus, *time.Time, *time.Time, error) {
		if o.Status != model.OrderStatusConfirmed {
			return "", nil, nil, NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}
		return model.OrderStatusInProgress, o.ConfirmedDate, nil, nil
	})
}

// Undo moves any non-completed order back to unconfirmed and clears
// confirmed_date. Laptop sold state is untouched: only Finish and Delete
// touch it.
func (u *OrderUsecase) Undo(ctx context.Context, orderID int64) error {
	return u.transition(ctx, orderID, func(o model.Order) (model.OrderStatus, *time.Time, *time.Time, error) {
		if o.Status == model.OrderStatusCompleted {
			return "", nil, nil, NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}
		return model.OrderStatusUnconfirmed, nil, nil, nil
	})
}

func (u *OrderUsecase) transition(ctx context.Context, orderID int64, next func(model.Order) (model.OrderStatus, *time.Time, *time.Time, error)) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		status, confirmedDate, completedDate, err := next(o)
		if err != nil {
			return err
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, status, confirmedDate, completedDate); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		log.Info().Int64("order_id", orderID).Str("from", string(o.Status)).Str("to", string(status)).Msg("order status updated")
		return nil
	})
}

// Finish completes the order and is the only path that removes laptops
// from availability: every item's laptop flips to sold with date_sold set.
// A laptop already sold by a competing completed order is re-marked
// idempotently; two unconfirmed orders may reference the same laptop and
// staff resolve that before finishing.
func (u *OrderUsecase) Finish(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.Status == model.OrderStatusCompleted {
			return NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := time.Now()
		for _, it := range items {
			if err := r.Laptops().SetSold(ctx, it.LaptopID, true, &now); err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusConflict, "items unavailable")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCompleted, o.ConfirmedDate, &now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		log.Info().Int64("order_id", orderID).Int("items", len(items)).Msg("order completed")
		return nil
	})
}

// Reject hard-deletes an unconfirmed order. Laptops were never marked sold
// at that stage, so there is nothing to compensate.
func (u *OrderUsecase) Reject(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.Status != model.OrderStatusUnconfirmed {
			return NewHTTPError(http.StatusBadRequest, "only unconfirmed orders can be rejected")
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		log.Info().Int64("order_id", orderID).Msg("order rejected")
		return nil
	})
}

// Delete is the compensating action for Finish and must stay symmetric
// with it: every referenced laptop returns to sold=false with date_sold
// cleared, then the order and its items are removed.
func (u *OrderUsecase) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		for _, it := range items {
			err := r.Laptops().SetSold(ctx, it.LaptopID, false, nil)
			if err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		log.Info().Int64("order_id", orderID).Int("items", len(items)).Msg("order deleted, laptops returned to inventory")
		return nil
	})
}

func (u *OrderUsecase) List(ctx context.Context, status string) ([]OrderOutput, error) {
	switch status {
	case "", string(model.OrderStatusUnconfirmed), string(model.OrderStatusConfirmed),
		string(model.OrderStatusInProgress), string(model.OrderStatusCompleted):
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{Status: status})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetDetail(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Lookup is the guest path: the order id alone is not enough, the contact
// email must match too.
func (u *OrderUsecase) Lookup(ctx context.Context, orderID int64, email string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(email) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "email required")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDAndEmail(ctx, orderID, email)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			LaptopID:      it.LaptopID,
			Quantity:      it.Quantity,
			PriceSnapshot: it.PriceSnapshot,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		GuestName:     o.GuestName,
		GuestEmail:    o.GuestEmail,
		GuestPhone:    o.GuestPhone,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		CreatedDate:   o.CreatedDate,
		ConfirmedDate: o.ConfirmedDate,
		CompletedDate: o.CompletedDate,
		Items:         outItems,
	}
}
