package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  int64           `gorm:"not null;index" json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	ImagePath   string          `gorm:"type:varchar(255)" json:"image_path"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
