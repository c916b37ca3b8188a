package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// paid / failed は終端（そこからの遷移は無い）
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// 注文は作成時点の金額スナップショット。
// 決済検証でpayment_id / signature / statusだけが更新される。
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user_id"`
	CartID         *int64          `gorm:"index" json:"cart_id,omitempty"`
	Cart           *Cart           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	GatewayOrderID string          `gorm:"type:varchar(255);uniqueIndex" json:"gateway_order_id"`
	PaymentID      string          `gorm:"type:varchar(255)" json:"payment_id"`
	Signature      string          `gorm:"type:varchar(255)" json:"-"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
