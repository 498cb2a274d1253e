package usecase

import (
	"context"
	"net/http"
	"strconv"

	"takeout/internal/domain/model"
	repo "takeout/internal/repository"
)

const shopStatusKey = "shop_status"

// ShopUsecase は店舗の営業中/休止中フラグ。KVストアに置き、期限は付けない。
type ShopUsecase struct {
	cache repo.CacheStore
}

func NewShopUsecase(cache repo.CacheStore) *ShopUsecase {
	return &ShopUsecase{cache: cache}
}

// Status はキー未設定なら休止中(0)扱い。
func (u *ShopUsecase) Status(ctx context.Context) (model.BinaryStatus, error) {
	raw, ok, err := u.cache.Get(ctx, shopStatusKey)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	if !ok {
		return model.StatusLocked, nil
	}

	n, err := strconv.Atoi(string(raw))
	if err != nil || !model.BinaryStatus(n).Valid() {
		return model.StatusLocked, nil
	}
	return model.BinaryStatus(n), nil
}

func (u *ShopUsecase) SetStatus(ctx context.Context, status model.BinaryStatus) error {
	if !status.Valid() {
		return NewHTTPError(http.StatusBadRequest, "status code is not correct")
	}

	value := strconv.Itoa(int(status))
	if err := u.cache.Set(ctx, shopStatusKey, []byte(value), 0); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	return nil
}
