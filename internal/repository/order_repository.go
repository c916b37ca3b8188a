package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//pendingの注文だけを対象に更新する。対象外はErrNotFound
	MarkPaid(ctx context.Context, orderID int64, paymentID string, signature string) error
	MarkFailed(ctx context.Context, orderID int64) error
}
