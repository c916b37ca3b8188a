package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品の色違いバリアント。価格は商品のbase_priceとは独立。
type ProductVariant struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	Product     *Product        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Color       string          `gorm:"type:varchar(50);not null" json:"color"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImagePath   string          `gorm:"type:varchar(255)" json:"image_path"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
