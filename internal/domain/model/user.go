package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;type:varchar(100);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         Role      `gorm:"column:role;type:varchar(20);not null;default:'guest'"`
	CreatedDate  time.Time `gorm:"column:created_date;not null;autoCreateTime"`
}
