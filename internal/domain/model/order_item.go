package model

import "time"

type OrderItem struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64 `gorm:"column:order_id;not null;index" json:"order_id"`
	LaptopID int64 `gorm:"column:laptop_id;not null;index" json:"laptop_id"`

	// Laptops are unique units, so quantity is effectively always 1.
	Quantity int64 `gorm:"column:quantity;not null;default:1" json:"quantity"`

	// price_to_sell at the moment of checkout.
	PriceSnapshot float64 `gorm:"column:price_snapshot;not null" json:"price_snapshot"`

	CreatedDate time.Time `gorm:"column:created_date;not null;autoCreateTime" json:"created_date"`
}
