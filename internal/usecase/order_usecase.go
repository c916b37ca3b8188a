package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderUsecase はチェックアウトと決済検証。
// ゲートウェイのシークレットはConfig経由でここに渡される（グローバル参照しない）。
type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	gateway   payment.Gateway
	keySecret string
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	gateway payment.Gateway,
	keySecret string,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		gateway:   gateway,
		keySecret: keySecret,
	}
}

// 注文作成のレスポンス。クライアントはrazorpay_keyで決済UIを開く
type CreateOrderResponse struct {
	OrderID        int64           `json:"order_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       string          `json:"currency"`
	GatewayOrderID string          `json:"razorpay_order_id"`
	GatewayKey     string          `json:"razorpay_key"`
}

type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

type OrderResponse struct {
	ID             int64           `json:"id"`
	GatewayOrderID string          `json:"razorpay_order_id"`
	PaymentID      string          `json:"razorpay_payment_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateOrder はカートを金額スナップショットして注文を作る。
// 価格はチェックアウト時点で再読込する（カート追加時の値は使わない）。
// 空カートはゲートウェイを呼ぶ前に拒否する。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64) (CreateOrderResponse, error) {
	if userID <= 0 {
		return CreateOrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var (
		cartID int64
		total  decimal.Decimal
	)

	//カートと明細の読取は1トランザクションでスナップショットする
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		sum := decimal.Zero
		for _, it := range items {
			ref, ok := it.Ref()
			if !ok {
				continue
			}

			var price decimal.Decimal
			if ref.IsVariant() {
				v, err := r.Variants().FindByID(ctx, ref.ID)
				if err == repo.ErrNotFound {
					continue
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				price = v.Price
			} else {
				p, err := r.Products().FindByID(ctx, ref.ID)
				if err == repo.ErrNotFound {
					continue
				}
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				price = p.BasePrice
			}

			sum = sum.Add(price.Mul(decimal.NewFromInt(it.Quantity)))
		}

		if sum.IsZero() {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		cartID = cart.ID
		total = sum
		return nil
	})
	if err != nil {
		return CreateOrderResponse{}, err
	}

	//ゲートウェイは最小通貨単位で受け取る
	gwOrder, err := u.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		AmountMinor: payment.ToMinorUnit(total),
		Currency:    "INR",
		Receipt:     uuid.NewString(),
	})
	if err != nil {
		if errors.Is(err, payment.ErrGatewayUnavailable) || errors.Is(err, payment.ErrGatewayRejected) {
			return CreateOrderResponse{}, NewHTTPError(http.StatusBadGateway, "payment gateway unavailable")
		}
		return CreateOrderResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	orderID, err := u.orders.Create(ctx, model.Order{
		UserID:         userID,
		CartID:         &cartID,
		GatewayOrderID: gwOrder.GatewayOrderID,
		Amount:         total,
		Status:         model.OrderStatusPending,
	})
	if err != nil {
		return CreateOrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CreateOrderResponse{
		OrderID:        orderID,
		TotalAmount:    total,
		Currency:       "INR",
		GatewayOrderID: gwOrder.GatewayOrderID,
		GatewayKey:     u.gateway.KeyID(),
	}, nil
}

// VerifyPayment は署名を再計算して照合し、一致すればpending→paidへ。
// 不一致なら注文はpendingのまま。
func (u *OrderUsecase) VerifyPayment(ctx context.Context, in VerifyPaymentInput) error {
	gatewayOrderID := strings.TrimSpace(in.GatewayOrderID)
	paymentID := strings.TrimSpace(in.PaymentID)
	signature := strings.TrimSpace(in.Signature)

	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return NewHTTPError(http.StatusBadRequest, "order_id, payment_id and signature are required")
	}

	if !payment.VerifySignature(u.keySecret, gatewayOrderID, paymentID, signature) {
		return NewHTTPError(http.StatusBadRequest, "invalid signature")
	}

	//検索と状態遷移を1トランザクションで行う
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByGatewayOrderID(ctx, gatewayOrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if order.Status.Terminal() {
			return NewHTTPError(http.StatusConflict, "order already settled")
		}

		if err := r.Orders().MarkPaid(ctx, order.ID, paymentID, signature); err != nil {
			if err == repo.ErrNotFound {
				//同時検証で先を越された
				return NewHTTPError(http.StatusConflict, "order already settled")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// FailPayment はゲートウェイ側で決済が拒否されたという本人からの報告。
// pending→failed。終端からの遷移は無い
func (u *OrderUsecase) FailPayment(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if order.Status.Terminal() {
			return NewHTTPError(http.StatusConflict, "order already settled")
		}

		if err := r.Orders().MarkFailed(ctx, order.ID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusConflict, "order already settled")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderResponse{
			ID:             o.ID,
			GatewayOrderID: o.GatewayOrderID,
			PaymentID:      o.PaymentID,
			Amount:         o.Amount,
			Status:         string(o.Status),
			CreatedAt:      o.CreatedAt,
		})
	}
	return out, nil
}
