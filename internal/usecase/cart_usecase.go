package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"takeout/internal/domain/cart"
	repo "takeout/internal/repository"

	"github.com/shopspring/decimal"
)

// カートは最終書き込みから24時間で消える。書くたびに延長する。
const cartTTL = 24 * time.Hour

func cartCacheKey(customerID int64) string {
	return fmt.Sprintf("cart_%d", customerID)
}

// CartUsecase は顧客カートの業務ロジック。
// カート本体はKVストアに置き、読み書きは楽観ロックで1単位にする。
type CartUsecase struct {
	cache       repo.CacheStore
	dishRepo    repo.DishRepository
	setmealRepo repo.SetmealRepository
	clock       Clock
}

func NewCartUsecase(
	cache repo.CacheStore,
	dishRepo repo.DishRepository,
	setmealRepo repo.SetmealRepository,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		cache:       cache,
		dishRepo:    dishRepo,
		setmealRepo: setmealRepo,
		clock:       clock,
	}
}

// CartLineResponse は現在の料理・セット情報で解決した表示用の1行。
// priceは現在価格（注文時ではない）。
type CartLineResponse struct {
	ItemKey string          `json:"item_key"`
	Name    string          `json:"name"`
	Image   string          `json:"image"`
	Price   decimal.Decimal `json:"price"`
	Number  int64           `json:"number"`
}

// Add は1個追加する。正しい形のキーなら失敗しない。
func (u *CartUsecase) Add(ctx context.Context, customerID int64, itemKey string) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	now := u.clock.Now()
	err := u.cache.Update(ctx, cartCacheKey(customerID), cartTTL,
		func(current []byte, exists bool) ([]byte, bool, error) {
			c, err := decodeCart(current, exists)
			if err != nil {
				return nil, false, err
			}
			if err := c.Add(itemKey, now); err != nil {
				return nil, false, err
			}
			next, err := json.Marshal(c)
			return next, false, err
		})

	return mapCartError(err)
}

// Remove は1個減らす。最後の1個なら行ごと消し、空になったらカート自体を消す。
func (u *CartUsecase) Remove(ctx context.Context, customerID int64, itemKey string) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	now := u.clock.Now()
	err := u.cache.Update(ctx, cartCacheKey(customerID), cartTTL,
		func(current []byte, exists bool) ([]byte, bool, error) {
			c, err := decodeCart(current, exists)
			if err != nil {
				return nil, false, err
			}
			if err := c.Remove(itemKey, now); err != nil {
				return nil, false, err
			}
			if c.Empty() {
				return nil, true, nil
			}
			next, err := json.Marshal(c)
			return next, false, err
		})

	return mapCartError(err)
}

// List はカートを現在のメニュー情報で解決して返す。
// カートが無い・期限切れなら空を返す。参照先が消えた行は飛ばす。
func (u *CartUsecase) List(ctx context.Context, customerID int64) ([]CartLineResponse, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	c, err := loadCart(ctx, u.cache, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "cache error")
	}

	keys := sortedKeys(c)
	lines := make([]CartLineResponse, 0, len(keys))

	for _, raw := range keys {
		key, err := cart.ParseKey(raw)
		if err != nil {
			//カートに入った後で形式が壊れることはないはずだが、行単位で無視はしない
			return nil, WrapHTTPError(http.StatusInternalServerError, "corrupt cart entry", err)
		}

		line := CartLineResponse{ItemKey: raw, Number: c[raw].Number}

		switch key.Kind {
		case cart.KindDish:
			d, err := u.dishRepo.FindByID(ctx, key.ID)
			if err == repo.ErrNotFound {
				continue
			}
			if err != nil {
				return nil, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			line.Name = d.Name
			line.Image = d.Image
			line.Price = d.Price

		case cart.KindSetmeal:
			s, err := u.setmealRepo.FindByID(ctx, key.ID)
			if err == repo.ErrNotFound {
				continue
			}
			if err != nil {
				return nil, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			line.Name = s.Name
			line.Image = s.Image
			line.Price = s.Price
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// Clear は無条件に消す。既に無くても成功。
func (u *CartUsecase) Clear(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cache.Delete(ctx, cartCacheKey(customerID)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "cache error")
	}
	return nil
}

func decodeCart(current []byte, exists bool) (cart.Cart, error) {
	c := cart.Cart{}
	if !exists {
		return c, nil
	}
	if err := json.Unmarshal(current, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// loadCart はKVストアからカートを読む。注文確定でも使う。
func loadCart(ctx context.Context, cache repo.CacheStore, customerID int64) (cart.Cart, error) {
	raw, found, err := cache.Get(ctx, cartCacheKey(customerID))
	if err != nil {
		return nil, err
	}
	return decodeCart(raw, found)
}

func clearCart(ctx context.Context, cache repo.CacheStore, customerID int64) error {
	return cache.Delete(ctx, cartCacheKey(customerID))
}

func sortedKeys(c cart.Cart) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapCartError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cart.ErrInvalidItemKey):
		return WrapHTTPError(http.StatusBadRequest, "invalid item key", err)
	case errors.Is(err, cart.ErrItemNotInCart):
		return WrapHTTPError(http.StatusNotFound, "item not in cart", err)
	default:
		return WrapHTTPError(http.StatusInternalServerError, "cache error", err)
	}
}
