package model

import "time"

// LaptopSparepart records one installed-part instance per row, not an
// aggregated count. Deleting one row returns exactly one unit to stock.
type LaptopSparepart struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	LaptopID      int64     `gorm:"column:laptop_id;not null;index" json:"laptop_id"`
	SparepartID   int64     `gorm:"column:sparepart_id;not null;index" json:"sparepart_id"`
	InstalledDate time.Time `gorm:"column:installed_date;not null;autoCreateTime" json:"installed_date"`
}
