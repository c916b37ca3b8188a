package repository

import (
	"context"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

// 新しい順
func (r *WishlistGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.WishlistItem{}, err
	}
	return items, nil
}

func (r *WishlistGormRepository) Create(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.WishlistItem{}, err
	}
	return item, nil
}

// variant無しのproduct登録と、variant登録は別々に重複判定する
func (r *WishlistGormRepository) ExistsByUserAndRef(ctx context.Context, userID int64, ref model.LineRef) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("user_id = ?", userID)

	if ref.IsVariant() {
		q = q.Where("variant_id = ?", ref.ID)
	} else {
		q = q.Where("product_id = ? AND variant_id IS NULL", ref.ID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// 本人のエントリだけ削除できる
func (r *WishlistGormRepository) DeleteOwnedByID(ctx context.Context, itemID int64, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.WishlistItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
