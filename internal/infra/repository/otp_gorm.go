package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type OTPGormRepository struct {
	db *gorm.DB
}

func NewOTPGormRepository(db *gorm.DB) *OTPGormRepository {
	return &OTPGormRepository{db: db}
}

func (r *OTPGormRepository) Create(ctx context.Context, otp model.PasswordResetOTP) (model.PasswordResetOTP, error) {
	if err := r.db.WithContext(ctx).Create(&otp).Error; err != nil {
		return model.PasswordResetOTP{}, err
	}
	return otp, nil
}

// 未使用のうちcodeが一致する最新の1件
func (r *OTPGormRepository) FindLatestUnused(ctx context.Context, userID int64, code string) (model.PasswordResetOTP, error) {
	var otp model.PasswordResetOTP

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND used = ?", userID, code, false).
		Order("created_at desc").
		First(&otp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PasswordResetOTP{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.PasswordResetOTP{}, err
	}
	return otp, nil
}

func (r *OTPGormRepository) MarkUsed(ctx context.Context, otpID int64) error {
	res := r.db.WithContext(ctx).Model(&model.PasswordResetOTP{}).
		Where("id = ?", otpID).
		Update("used", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
