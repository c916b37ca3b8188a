package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	//ユーザーのカートを取得し、無ければ作成（冪等）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
}
