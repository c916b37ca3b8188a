package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ゲートウェイに届かない・応答しない（タイムアウト含む）。呼び出し側は502にする
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ゲートウェイがリクエストを拒否した（4xx）
var ErrGatewayRejected = errors.New("payment gateway rejected request")

// Razorpayの注文作成だけを約束。Usecaseはこのinterfaceに依存する
type Gateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error)
	KeyID() string
}

type CreateOrderRequest struct {
	// 最小通貨単位（INRならpaise）
	AmountMinor int64
	Currency    string
	Receipt     string
}

type CreateOrderResponse struct {
	GatewayOrderID string
	AmountMinor    int64
	Currency       string
}

type razorpayCreateOrderBody struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt,omitempty"`
	PaymentCapture int    `json:"payment_capture"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Error    *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// RazorpayClient はRazorpay Orders APIのHTTPクライアント。
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewRazorpayClient(cfg config.Config, logger *zap.Logger) *RazorpayClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.GatewayTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RazorpayClient{
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
		baseURL:   cfg.RazorpayBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

// CreateOrder はRazorpayに注文を作成する。
// タイムアウト・接続不可・5xxはErrGatewayUnavailableに寄せる。
func (c *RazorpayClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error) {
	if req.AmountMinor <= 0 {
		return CreateOrderResponse{}, fmt.Errorf("razorpay: invalid amount %d", req.AmountMinor)
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	body := razorpayCreateOrderBody{
		Amount:         req.AmountMinor,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		PaymentCapture: 1,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return CreateOrderResponse{}, fmt.Errorf("razorpay: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return CreateOrderResponse{}, fmt.Errorf("razorpay: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("razorpay create order failed", zap.Error(err))
		return CreateOrderResponse{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out razorpayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("razorpay response decode failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return CreateOrderResponse{}, fmt.Errorf("%w: bad response body", ErrGatewayUnavailable)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Warn("razorpay server error", zap.Int("status", resp.StatusCode))
		return CreateOrderResponse{}, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		desc := ""
		if out.Error != nil {
			desc = out.Error.Description
		}
		c.logger.Warn("razorpay rejected order",
			zap.Int("status", resp.StatusCode),
			zap.String("description", desc),
		)
		return CreateOrderResponse{}, fmt.Errorf("%w: %s", ErrGatewayRejected, desc)
	}

	if out.ID == "" {
		return CreateOrderResponse{}, fmt.Errorf("%w: missing order id", ErrGatewayUnavailable)
	}

	return CreateOrderResponse{
		GatewayOrderID: out.ID,
		AmountMinor:    out.Amount,
		Currency:       out.Currency,
	}, nil
}

// ToMinorUnit は金額を最小通貨単位へ変換する（INR→paise）。
func ToMinorUnit(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
