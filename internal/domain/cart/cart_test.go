package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		raw  string
		want ItemKey
	}{
		{"dish_7", ItemKey{Kind: KindDish, ID: 7}},
		{"dish_7_spicy", ItemKey{Kind: KindDish, ID: 7, Flavor: "spicy"}},
		{"setmeal_3", ItemKey{Kind: KindSetmeal, ID: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseKey(tc.raw)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.raw, got.String())
		})
	}
}

func TestParseKey_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"dish",
		"setmeal",
		"setmeal_3_extra", // setmealにflavorは無い
		"dish_7_spicy_hot",
		"drink_1",
		"dish_abc",
		"dish_0",
		"dish_-1",
		"dish_7_",
	}

	for _, raw := range invalid {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseKey(raw)
			assert.ErrorIs(t, err, ErrInvalidItemKey)
		})
	}
}

func TestCart_AddAccumulates(t *testing.T) {
	c := Cart{}
	now := time.Now()

	for i := 0; i < 5; i++ {
		assert.NoError(t, c.Add("dish_7", now))
	}

	assert.Equal(t, int64(5), c["dish_7"].Number)
}

func TestCart_AddRefreshesTimestamp(t *testing.T) {
	c := Cart{}
	first := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	assert.NoError(t, c.Add("setmeal_3", first))
	assert.NoError(t, c.Add("setmeal_3", second))

	assert.Equal(t, int64(2), c["setmeal_3"].Number)
	assert.Equal(t, second, c["setmeal_3"].UpdatedAt)
}

func TestCart_RemoveLastDeletesEntry(t *testing.T) {
	c := Cart{}
	now := time.Now()

	assert.NoError(t, c.Add("dish_7", now))
	assert.NoError(t, c.Remove("dish_7", now))

	_, ok := c["dish_7"]
	assert.False(t, ok)
	assert.True(t, c.Empty())
}

func TestCart_RemoveDecrements(t *testing.T) {
	c := Cart{}
	now := time.Now()

	assert.NoError(t, c.Add("dish_7_spicy", now))
	assert.NoError(t, c.Add("dish_7_spicy", now))
	assert.NoError(t, c.Remove("dish_7_spicy", now))

	assert.Equal(t, int64(1), c["dish_7_spicy"].Number)
}

func TestCart_RemoveAbsent(t *testing.T) {
	c := Cart{}
	err := c.Remove("dish_7", time.Now())
	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func TestCart_RemoveInvalidKey(t *testing.T) {
	c := Cart{}
	err := c.Remove("drink_1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidItemKey)
}
