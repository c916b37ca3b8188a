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

func newCatalogUsecase() (*usecase.CatalogUsecase, *CategoryRepoMock, *ProductRepoMock, *VariantRepoMock) {
	cRepo := new(CategoryRepoMock)
	pRepo := new(ProductRepoMock)
	vRepo := new(VariantRepoMock)
	uc := usecase.NewCatalogUsecase(cRepo, pRepo, vRepo)
	return uc, cRepo, pRepo, vRepo
}

// Test: 検索語はtrimしてrepoへ渡す
func TestCatalogUsecase_ListProducts_TrimsSearch(t *testing.T) {
	uc, _, pRepo, _ := newCatalogUsecase()

	pRepo.On("List", mock.Anything, repo.CatalogListQuery{Search: "mug"}).
		Return([]model.Product{{ID: 1, Name: "mug"}}, nil)

	out, err := uc.ListProducts(context.Background(), "  mug  ")
	require.NoError(t, err)
	assert.Len(t, out, 1)
	pRepo.AssertExpectations(t)
}

// Test: 商品作成はカテゴリ存在が前提
func TestCatalogUsecase_CreateProduct(t *testing.T) {
	uc, cRepo, pRepo, _ := newCatalogUsecase()

	cRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Category{ID: 3, Name: "kitchen"}, nil)
	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "mug" && p.CategoryID == 3
	})).Return(model.Product{ID: 1, Name: "mug", CategoryID: 3}, nil)

	out, err := uc.CreateProduct(context.Background(), usecase.ProductInput{
		CategoryID: 3,
		Name:       "mug",
		BasePrice:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
}

func TestCatalogUsecase_CreateProduct_CategoryMissing(t *testing.T) {
	uc, cRepo, pRepo, _ := newCatalogUsecase()

	cRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.CreateProduct(context.Background(), usecase.ProductInput{
		CategoryID: 99,
		Name:       "mug",
		BasePrice:  decimal.NewFromInt(100),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	pRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_CreateProduct_NegativePrice(t *testing.T) {
	uc, _, _, _ := newCatalogUsecase()

	_, err := uc.CreateProduct(context.Background(), usecase.ProductInput{
		CategoryID: 3,
		Name:       "mug",
		BasePrice:  decimal.NewFromInt(-1),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_CreateProduct_NameRequired(t *testing.T) {
	uc, _, _, _ := newCatalogUsecase()

	_, err := uc.CreateProduct(context.Background(), usecase.ProductInput{
		CategoryID: 3,
		Name:       "   ",
		BasePrice:  decimal.NewFromInt(100),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// Test: カテゴリ名の重複は409
func TestCatalogUsecase_CreateCategory_Duplicate(t *testing.T) {
	uc, cRepo, _, _ := newCatalogUsecase()

	cRepo.On("Create", mock.Anything, mock.Anything).Return(model.Category{}, repo.ErrDuplicate)

	_, err := uc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "kitchen"})
	assertHTTPStatus(t, err, http.StatusConflict)
}

// Test: バリアント作成は親商品が前提
func TestCatalogUsecase_CreateVariant(t *testing.T) {
	uc, _, pRepo, vRepo := newCatalogUsecase()

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "mug"}, nil)
	vRepo.On("Create", mock.Anything, mock.MatchedBy(func(v model.ProductVariant) bool {
		return v.ProductID == 1 && v.Color == "red"
	})).Return(model.ProductVariant{ID: 7, ProductID: 1, Color: "red", Price: decimal.NewFromInt(150)}, nil)

	out, err := uc.CreateVariant(context.Background(), usecase.VariantInput{
		ProductID: 1,
		Color:     "red",
		Price:     decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "red", out.Color)
}

func TestCatalogUsecase_CreateVariant_ProductMissing(t *testing.T) {
	uc, _, pRepo, vRepo := newCatalogUsecase()

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.CreateVariant(context.Background(), usecase.VariantInput{
		ProductID: 99,
		Color:     "red",
		Price:     decimal.NewFromInt(150),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	vRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogUsecase_Delete_NotFound(t *testing.T) {
	uc, cRepo, pRepo, vRepo := newCatalogUsecase()

	cRepo.On("DeleteByID", mock.Anything, int64(9)).Return(repo.ErrNotFound)
	pRepo.On("DeleteByID", mock.Anything, int64(9)).Return(repo.ErrNotFound)
	vRepo.On("DeleteByID", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	assertHTTPStatus(t, uc.DeleteCategory(context.Background(), 9), http.StatusNotFound)
	assertHTTPStatus(t, uc.DeleteProduct(context.Background(), 9), http.StatusNotFound)
	assertHTTPStatus(t, uc.DeleteVariant(context.Background(), 9), http.StatusNotFound)
}
