package model

import "time"

type PartType string

const (
	PartTypeStorage PartType = "Storage"
	PartTypeRAM     PartType = "RAM"
)

type SparePart struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PartType    PartType `gorm:"column:part_type;type:varchar(20);not null;index" json:"part_type"`
	StorageType string   `gorm:"column:storage_type;type:varchar(50)" json:"storage_type"`
	RAMType     string   `gorm:"column:ram_type;type:varchar(50)" json:"ram_type"`
	RAMSpeed    string   `gorm:"column:ram_speed;type:varchar(50)" json:"ram_speed"`
	Capacity    string   `gorm:"column:capacity;type:varchar(50)" json:"capacity"`
	Notes       string   `gorm:"column:notes;type:text" json:"notes"`

	// Never negative. Install consumes one unit, uninstall returns it.
	Quantity int64 `gorm:"column:quantity;not null;default:0" json:"quantity"`

	CreatedDate time.Time `gorm:"column:created_date;not null;autoCreateTime" json:"created_date"`
	LastEdited  time.Time `gorm:"column:last_edited;not null;autoUpdateTime" json:"last_edited"`
}
