package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// CatalogUsecase はカテゴリ・商品・バリアントのCRUD。
// 読み取りは公開、書き込みはadminのみ（ルーティング側でガード）。
type CatalogUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	variantRepo  repo.VariantRepository
}

// DI
func NewCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	variantRepo repo.VariantRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
	}
}

type CategoryInput struct {
	Name        string
	Description string
	ImagePath   string
}

type ProductInput struct {
	CategoryID  int64
	Name        string
	Description string
	BasePrice   decimal.Decimal
	ImagePath   string
}

type VariantInput struct {
	ProductID   int64
	Color       string
	Description string
	Price       decimal.Decimal
	ImagePath   string
}

type VariantResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Color       string          `json:"color"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImagePath   string          `json:"image_path"`
	CreatedAt   time.Time       `json:"created_at"`
}

// --- Category ---

func (u *CatalogUsecase) ListCategories(ctx context.Context, search string) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx, repo.CatalogListQuery{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CatalogUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        name,
		Description: in.Description,
		ImagePath:   in.ImagePath,
	})
	if err == repo.ErrDuplicate {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category name already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:          id,
		Name:        name,
		Description: in.Description,
		ImagePath:   in.ImagePath,
	})
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrDuplicate {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category name already exists")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCategory(ctx, id)
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	err := u.categoryRepo.DeleteByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// --- Product ---

func (u *CatalogUsecase) ListProducts(ctx context.Context, search string) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx, repo.CatalogListQuery{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := u.validateProductInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		ImagePath:   in.ImagePath,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	if err := u.validateProductInput(ctx, in); err != nil {
		return model.Product{}, err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          id,
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		ImagePath:   in.ImagePath,
	})
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetProduct(ctx, id)
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	err := u.productRepo.DeleteByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) validateProductInput(ctx context.Context, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.BasePrice.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	//カテゴリの存在チェック
	_, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// --- ProductVariant ---

func (u *CatalogUsecase) ListVariants(ctx context.Context, search string) ([]VariantResponse, error) {
	items, err := u.variantRepo.List(ctx, repo.CatalogListQuery{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]VariantResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVariantResponse(v))
	}
	return out, nil
}

func (u *CatalogUsecase) GetVariant(ctx context.Context, id int64) (VariantResponse, error) {
	v, err := u.variantRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return VariantResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return VariantResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toVariantResponse(v), nil
}

func (u *CatalogUsecase) CreateVariant(ctx context.Context, in VariantInput) (VariantResponse, error) {
	if err := u.validateVariantInput(ctx, in); err != nil {
		return VariantResponse{}, err
	}

	created, err := u.variantRepo.Create(ctx, model.ProductVariant{
		ProductID:   in.ProductID,
		Color:       strings.TrimSpace(in.Color),
		Description: in.Description,
		Price:       in.Price,
		ImagePath:   in.ImagePath,
	})
	if err != nil {
		return VariantResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toVariantResponse(created), nil
}

func (u *CatalogUsecase) UpdateVariant(ctx context.Context, id int64, in VariantInput) (VariantResponse, error) {
	if err := u.validateVariantInput(ctx, in); err != nil {
		return VariantResponse{}, err
	}

	err := u.variantRepo.Update(ctx, model.ProductVariant{
		ID:          id,
		ProductID:   in.ProductID,
		Color:       strings.TrimSpace(in.Color),
		Description: in.Description,
		Price:       in.Price,
		ImagePath:   in.ImagePath,
	})
	if err == repo.ErrNotFound {
		return VariantResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return VariantResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetVariant(ctx, id)
}

func (u *CatalogUsecase) DeleteVariant(ctx context.Context, id int64) error {
	err := u.variantRepo.DeleteByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) validateVariantInput(ctx context.Context, in VariantInput) error {
	if strings.TrimSpace(in.Color) == "" {
		return NewHTTPError(http.StatusBadRequest, "color is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if in.ProductID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	_, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toVariantResponse(v model.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:          v.ID,
		ProductID:   v.ProductID,
		Color:       v.Color,
		Description: v.Description,
		Price:       v.Price,
		ImagePath:   v.ImagePath,
		CreatedAt:   v.CreatedAt,
	}
}
