package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func ptr(v int64) *int64 { return &v }

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *VariantRepoMock) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	variantRepo := new(VariantRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, itemRepo, productRepo, variantRepo)
	return uc, cartRepo, itemRepo, productRepo, variantRepo
}

// Test: カート取得（無ければ空で作成）
func TestCartUsecase_GetCart_CreatesEmptyCart(t *testing.T) {
	uc, cartRepo, itemRepo, _, _ := newCartUsecase()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

// Test: 合計は現在価格で計算される（100×2 + 150×1 = 350）
func TestCartUsecase_GetCart_TotalFromCurrentPrices(t *testing.T) {
	uc, cartRepo, itemRepo, productRepo, variantRepo := newCartUsecase()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: ptr(100), Quantity: 2},
		{ID: 2, CartID: 10, VariantID: ptr(200), Quantity: 1},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "mug", BasePrice: decimal.NewFromInt(100)}, nil)
	variantRepo.On("FindByID", mock.Anything, int64(200)).
		Return(model.ProductVariant{ID: 200, ProductID: 101, Color: "red", Price: decimal.NewFromInt(150)}, nil)
	productRepo.On("FindByID", mock.Anything, int64(101)).
		Return(model.Product{ID: 101, Name: "shirt", BasePrice: decimal.NewFromInt(120)}, nil)

	out, err := uc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(350)), "total = %s", out.Total)
	//variant行はvariant価格と色を持つ
	assert.Equal(t, "red", out.Items[1].Color)
	assert.True(t, out.Items[1].Price.Equal(decimal.NewFromInt(150)))
}

// Test: 参照先が消えた行は読み飛ばす
func TestCartUsecase_GetCart_SkipsDanglingLines(t *testing.T) {
	uc, cartRepo, itemRepo, productRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: ptr(100), Quantity: 1},
		{ID: 2, CartID: 10, ProductID: ptr(999), Quantity: 1},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "mug", BasePrice: decimal.NewFromInt(100)}, nil)
	productRepo.On("FindByID", mock.Anything, int64(999)).
		Return(model.Product{}, repo.ErrNotFound)

	out, err := uc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(100)))
}

// Test: 追加は同一参照に数量加算（repoのupsertに委譲）
func TestCartUsecase_AddItem_UpsertsQuantity(t *testing.T) {
	uc, cartRepo, itemRepo, productRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	productRepo.On("FindByID", mock.Anything, int64(100)).
		Return(model.Product{ID: 100, Name: "mug", BasePrice: decimal.NewFromInt(100)}, nil)
	itemRepo.On("UpsertByCartAndRef", mock.Anything, int64(10), model.ProductRef(100), int64(2)).
		Return(model.CartItem{ID: 1, CartID: 10, ProductID: ptr(100), Quantity: 3}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: ptr(100), Quantity: 3},
	}, nil)

	out, err := uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{
		Ref:      model.ProductRef(100),
		Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(3), out.Items[0].Quantity)
	itemRepo.AssertExpectations(t)
}

// Test: 数量0以下は400
func TestCartUsecase_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	uc, _, _, _, _ := newCartUsecase()

	_, err := uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{
		Ref:      model.ProductRef(100),
		Quantity: 0,
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{
		Ref:      model.ProductRef(100),
		Quantity: -1,
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// Test: productもvariantも無指定は400
func TestCartUsecase_AddItem_RejectsMissingRef(t *testing.T) {
	uc, _, _, _, _ := newCartUsecase()

	_, err := uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{Quantity: 1})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// Test: 存在しない商品は404
func TestCartUsecase_AddItem_ProductNotFound(t *testing.T) {
	uc, cartRepo, _, productRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	productRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{
		Ref:      model.ProductRef(999),
		Quantity: 1,
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// Test: 数量変更。他人の明細は404
func TestCartUsecase_UpdateItem_NotOwned(t *testing.T) {
	uc, _, itemRepo, _, _ := newCartUsecase()

	itemRepo.On("IsOwnedByUser", mock.Anything, int64(5), int64(1)).Return(false, nil)

	_, err := uc.UpdateItem(context.Background(), 1, 5, usecase.UpdateCartItemInput{Quantity: 2})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_UpdateItem_RejectsNonPositiveQuantity(t *testing.T) {
	uc, _, _, _, _ := newCartUsecase()

	_, err := uc.UpdateItem(context.Background(), 1, 5, usecase.UpdateCartItemInput{Quantity: 0})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// Test: 明細削除
func TestCartUsecase_RemoveItem(t *testing.T) {
	uc, cartRepo, itemRepo, _, _ := newCartUsecase()

	itemRepo.On("IsOwnedByUser", mock.Anything, int64(5), int64(1)).Return(true, nil)
	itemRepo.On("DeleteByID", mock.Anything, int64(5)).Return(nil)
	cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.RemoveItem(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	itemRepo.AssertExpectations(t)
}
