package model

import "time"

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImagePath   string    `gorm:"type:varchar(255)" json:"image_path"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
