package repository

import (
	"context"

	"app/internal/domain/model"
)

// 一覧検索（name/description、variantはcolor/descriptionの部分一致）
type CatalogListQuery struct {
	Search string
}

type CategoryRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	DeleteByID(ctx context.Context, id int64) error
}

type ProductRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	DeleteByID(ctx context.Context, id int64) error
}

type VariantRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.ProductVariant, error)
	FindByID(ctx context.Context, id int64) (model.ProductVariant, error)
	Create(ctx context.Context, v model.ProductVariant) (model.ProductVariant, error)
	Update(ctx context.Context, v model.ProductVariant) error
	DeleteByID(ctx context.Context, id int64) error
}
