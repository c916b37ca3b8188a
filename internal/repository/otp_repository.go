package repository

import (
	"context"

	"app/internal/domain/model"
)

type PasswordResetOTPRepository interface {
	Create(ctx context.Context, otp model.PasswordResetOTP) (model.PasswordResetOTP, error)
	//未使用のうちcodeが一致する最新の1件。無ければErrNotFound
	FindLatestUnused(ctx context.Context, userID int64, code string) (model.PasswordResetOTP, error)
	MarkUsed(ctx context.Context, otpID int64) error
}
