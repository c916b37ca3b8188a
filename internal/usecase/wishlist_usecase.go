package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
	variantRepo  repo.VariantRepository
}

func NewWishlistUsecase(
	wishlistRepo repo.WishlistRepository,
	productRepo repo.ProductRepository,
	variantRepo repo.VariantRepository,
) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
	}
}

type AddWishlistItemInput struct {
	Ref model.LineRef
}

type WishlistItemResponse struct {
	ID        int64           `json:"id"`
	ProductID *int64          `json:"product_id,omitempty"`
	VariantID *int64          `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Color     string          `json:"color,omitempty"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Add はウィッシュリストに1件追加。同じ参照の二重登録は409
func (u *WishlistUsecase) Add(ctx context.Context, userID int64, in AddWishlistItemInput) (WishlistItemResponse, error) {
	if userID <= 0 {
		return WishlistItemResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !in.Ref.Valid() {
		return WishlistItemResponse{}, NewHTTPError(http.StatusBadRequest, "provide either product or variant")
	}

	if err := u.checkRefExists(ctx, in.Ref); err != nil {
		return WishlistItemResponse{}, err
	}

	exists, err := u.wishlistRepo.ExistsByUserAndRef(ctx, userID, in.Ref)
	if err != nil {
		return WishlistItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return WishlistItemResponse{}, NewHTTPError(http.StatusConflict, "already in the wishlist")
	}

	productID, variantID := in.Ref.Columns()
	created, err := u.wishlistRepo.Create(ctx, model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
	})
	if err != nil {
		if err == repo.ErrDuplicate {
			//存在チェックとの競合。後勝ちは409に倒す
			return WishlistItemResponse{}, NewHTTPError(http.StatusConflict, "already in the wishlist")
		}
		return WishlistItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp, ok, err := u.resolveItem(ctx, created)
	if err != nil {
		return WishlistItemResponse{}, err
	}
	if !ok {
		return WishlistItemResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return resp, nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, itemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.wishlistRepo.DeleteOwnedByID(ctx, itemID, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// List は新しい順。参照先が消えた行は読み飛ばす
func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]WishlistItemResponse, 0, len(items))
	for _, it := range items {
		resp, ok, err := u.resolveItem(ctx, it)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, resp)
	}
	return out, nil
}

func (u *WishlistUsecase) checkRefExists(ctx context.Context, ref model.LineRef) error {
	if ref.IsVariant() {
		if _, err := u.variantRepo.FindByID(ctx, ref.ID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "variant not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	}
	if _, err := u.productRepo.FindByID(ctx, ref.ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WishlistUsecase) resolveItem(ctx context.Context, it model.WishlistItem) (WishlistItemResponse, bool, error) {
	ref, ok := it.Ref()
	if !ok {
		return WishlistItemResponse{}, false, nil
	}

	resp := WishlistItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		VariantID: it.VariantID,
		CreatedAt: it.CreatedAt,
	}

	if ref.IsVariant() {
		v, err := u.variantRepo.FindByID(ctx, ref.ID)
		if err == repo.ErrNotFound {
			return WishlistItemResponse{}, false, nil
		}
		if err != nil {
			return WishlistItemResponse{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		p, err := u.productRepo.FindByID(ctx, v.ProductID)
		if err == repo.ErrNotFound {
			return WishlistItemResponse{}, false, nil
		}
		if err != nil {
			return WishlistItemResponse{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		resp.Name = p.Name
		resp.Color = v.Color
		resp.Price = v.Price
		return resp, true, nil
	}

	p, err := u.productRepo.FindByID(ctx, ref.ID)
	if err == repo.ErrNotFound {
		return WishlistItemResponse{}, false, nil
	}
	if err != nil {
		return WishlistItemResponse{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	resp.Name = p.Name
	resp.Price = p.BasePrice
	return resp, true, nil
}
