package model

import "time"

// LaptopImage holds the image bytes themselves. At most one image per laptop
// carries IsPrimary at any time.
type LaptopImage struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	LaptopID      int64     `gorm:"column:laptop_id;not null;index" json:"laptop_id"`
	ImageData     []byte    `gorm:"column:image_data" json:"-"`
	ImageMimetype string    `gorm:"column:image_mimetype;type:varchar(100)" json:"image_mimetype"`
	ImageName     string    `gorm:"column:image_name;type:varchar(255)" json:"image_name"`
	IsPrimary     bool      `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	UploadedDate  time.Time `gorm:"column:uploaded_date;not null;autoCreateTime" json:"uploaded_date"`
}
