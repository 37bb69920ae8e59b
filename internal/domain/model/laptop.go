package model

import "time"

type Laptop struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SerialNumber string `gorm:"column:serial_number;type:varchar(20);not null;uniqueIndex" json:"serial_number"`
	LaptopName   string `gorm:"column:laptop_name;type:varchar(255);not null" json:"laptop_name"`
	CPU          string `gorm:"column:cpu;type:varchar(255)" json:"cpu"`
	RAM          string `gorm:"column:ram;type:varchar(255)" json:"ram"`
	Storage      string `gorm:"column:storage;type:varchar(255)" json:"storage"`
	OS           string `gorm:"column:os;type:varchar(255)" json:"os"`
	Notes        string `gorm:"column:notes;type:text" json:"notes"`

	PriceBought float64 `gorm:"column:price_bought;not null" json:"price_bought"`
	PriceToSell float64 `gorm:"column:price_to_sell;not null" json:"price_to_sell"`
	Fees        float64 `gorm:"column:fees;not null" json:"fees"`

	WarrantyStart *time.Time `gorm:"column:warranty_start" json:"warranty_start,omitempty"`
	WarrantyDays  int        `gorm:"column:warranty_days;not null;default:0" json:"warranty_days"`

	Sold     bool       `gorm:"column:sold;not null;default:false;index" json:"sold"`
	DateSold *time.Time `gorm:"column:date_sold" json:"date_sold,omitempty"`

	CreatedDate time.Time `gorm:"column:created_date;not null;autoCreateTime" json:"created_date"`
	LastEdited  time.Time `gorm:"column:last_edited;not null;autoUpdateTime" json:"last_edited"`
}
