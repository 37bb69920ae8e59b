package model

import "time"

type OrderStatus string

const (
	OrderStatusUnconfirmed OrderStatus = "unconfirmed"
	OrderStatusConfirmed   OrderStatus = "confirmed"
	OrderStatusInProgress  OrderStatus = "in_progress"
	OrderStatusCompleted   OrderStatus = "completed"
)

// Rejected orders are hard-deleted, not a stored status.
type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	GuestName  string      `gorm:"column:guest_name;type:varchar(255);not null" json:"guest_name"`
	GuestEmail string      `gorm:"column:guest_email;type:varchar(255);not null;index" json:"guest_email"`
	GuestPhone string      `gorm:"column:guest_phone;type:varchar(50)" json:"guest_phone"`
	Status     OrderStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`

	// Snapshotted sum at checkout time. Later price edits never change it.
	TotalAmount float64 `gorm:"column:total_amount;not null" json:"total_amount"`

	Notes string `gorm:"column:notes;type:text" json:"notes"`

	CreatedDate   time.Time  `gorm:"column:created_date;not null;autoCreateTime" json:"created_date"`
	ConfirmedDate *time.Time `gorm:"column:confirmed_date" json:"confirmed_date,omitempty"`
	CompletedDate *time.Time `gorm:"column:completed_date" json:"completed_date,omitempty"`
}
