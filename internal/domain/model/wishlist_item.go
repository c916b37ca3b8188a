package model

import "time"

// ウィッシュリストの1エントリ。
// (user, product) と (user, variant) の重複はそれぞれ独立に禁止。
type WishlistItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	ProductID *int64    `gorm:"index" json:"product_id,omitempty"`
	VariantID *int64    `gorm:"index" json:"variant_id,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (w WishlistItem) Ref() (LineRef, bool) {
	return RefFromColumns(w.ProductID, w.VariantID)
}
