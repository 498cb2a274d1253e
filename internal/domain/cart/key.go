package cart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 認識できるキー形式は dish_<id> / dish_<id>_<flavor> / setmeal_<id> のみ。
var ErrInvalidItemKey = errors.New("invalid cart item key")

type Kind string

const (
	KindDish    Kind = "dish"
	KindSetmeal Kind = "setmeal"
)

// カート1行を識別するキー。
type ItemKey struct {
	Kind   Kind
	ID     int64
	Flavor string
}

// ParseKey はキー文字列を分解する。形式外はエラーにする（黙って捨てない）。
func ParseKey(raw string) (ItemKey, error) {
	parts := strings.Split(raw, "_")

	switch {
	case len(parts) == 2 && parts[0] == string(KindSetmeal):
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, raw)
		}
		return ItemKey{Kind: KindSetmeal, ID: id}, nil

	case (len(parts) == 2 || len(parts) == 3) && parts[0] == string(KindDish):
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, raw)
		}
		key := ItemKey{Kind: KindDish, ID: id}
		if len(parts) == 3 {
			if parts[2] == "" {
				return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, raw)
			}
			key.Flavor = parts[2]
		}
		return key, nil

	default:
		return ItemKey{}, fmt.Errorf("%w: %q", ErrInvalidItemKey, raw)
	}
}

func (k ItemKey) String() string {
	if k.Flavor != "" {
		return fmt.Sprintf("%s_%d_%s", k.Kind, k.ID, k.Flavor)
	}
	return fmt.Sprintf("%s_%d", k.Kind, k.ID)
}
