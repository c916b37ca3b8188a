package model

import "time"

// カートの明細。
// product_id / variant_id はどちらか一方だけがセットされる（LineRef参照）。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_line" json:"cart_id"`
	ProductID *int64    `gorm:"index;uniqueIndex:idx_cart_line" json:"product_id,omitempty"`
	VariantID *int64    `gorm:"index;uniqueIndex:idx_cart_line" json:"variant_id,omitempty"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}

func (it CartItem) Ref() (LineRef, bool) {
	return RefFromColumns(it.ProductID, it.VariantID)
}
