package model

import "time"

// パスワードリセット用ワンタイムコード。
// 未使用のうち最新の1件だけが有効。
type PasswordResetOTP struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
