// Package cart は顧客ごとの買い物かごを表す。
// 実体はKVストアに入るキー→{個数,更新時刻}のマップで、
// 個数0の行は保持せず必ず消す。
package cart

import (
	"errors"
	"time"
)

var ErrItemNotInCart = errors.New("item not in cart")

type Entry struct {
	Number    int64     `json:"number"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Cart map[string]Entry

// Add はキーの行を1増やす。無ければ1で作る。
func (c Cart) Add(rawKey string, now time.Time) error {
	key, err := ParseKey(rawKey)
	if err != nil {
		return err
	}

	normalized := key.String()
	entry := c[normalized]
	entry.Number++
	entry.UpdatedAt = now
	c[normalized] = entry
	return nil
}

// Remove はキーの行を1減らす。1だったら行ごと消す。
func (c Cart) Remove(rawKey string, now time.Time) error {
	key, err := ParseKey(rawKey)
	if err != nil {
		return err
	}

	normalized := key.String()
	entry, ok := c[normalized]
	if !ok || entry.Number <= 0 {
		return ErrItemNotInCart
	}

	if entry.Number == 1 {
		delete(c, normalized)
		return nil
	}

	entry.Number--
	entry.UpdatedAt = now
	c[normalized] = entry
	return nil
}

func (c Cart) Empty() bool {
	return len(c) == 0
}
