package repository

import (
	"context"

	"app/internal/domain/model"
)

type WishlistRepository interface {
	//新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	Create(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error)
	//同じ参照が既に登録済みか
	ExistsByUserAndRef(ctx context.Context, userID int64, ref model.LineRef) (bool, error)
	DeleteOwnedByID(ctx context.Context, itemID int64, userID int64) error
}
