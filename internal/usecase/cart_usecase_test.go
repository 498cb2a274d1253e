package usecase

import (
	"context"
	"testing"
	"time"

	"takeout/internal/domain/model"
	"takeout/internal/infra/cache"
	repo "takeout/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecaseForTest() (*CartUsecase, *MockDishRepo, *MockSetmealRepo, *cache.MemoryStore) {
	store := cache.NewMemoryStore()
	dishRepo := new(MockDishRepo)
	setmealRepo := new(MockSetmealRepo)
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	uc := NewCartUsecase(store, dishRepo, setmealRepo, clock)
	return uc, dishRepo, setmealRepo, store
}

func TestCartAdd_AccumulatesCount(t *testing.T) {
	uc, dishRepo, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := uc.Add(ctx, 10, "dish_7_spicy")
		assert.NoError(t, err)
	}

	dishRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Dish{ID: 7, Name: "mapo tofu", Price: decimal.NewFromInt(12)}, nil)

	lines, err := uc.List(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "dish_7_spicy", lines[0].ItemKey)
	assert.Equal(t, int64(5), lines[0].Number)
	assert.Equal(t, "mapo tofu", lines[0].Name)
}

func TestCartAdd_InvalidKeyRejected(t *testing.T) {
	uc, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	for _, key := range []string{"", "dish_abc", "dish_0", "setmeal_1_extra", "pizza_3"} {
		err := uc.Add(ctx, 10, key)
		he, ok := AsHTTPError(err)
		assert.True(t, ok, "key %q should fail", key)
		assert.Equal(t, 400, he.Status)
	}
}

func TestCartRemove_DecrementsAndDeletesLast(t *testing.T) {
	uc, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	assert.NoError(t, uc.Add(ctx, 10, "setmeal_3"))
	assert.NoError(t, uc.Add(ctx, 10, "setmeal_3"))

	//2 → 1
	assert.NoError(t, uc.Remove(ctx, 10, "setmeal_3"))

	//1 → 行ごと消える → カート自体も空なので消える
	assert.NoError(t, uc.Remove(ctx, 10, "setmeal_3"))

	lines, err := uc.List(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartRemove_AbsentItemIsNotFound(t *testing.T) {
	uc, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	assert.NoError(t, uc.Add(ctx, 10, "dish_7"))

	err := uc.Remove(ctx, 10, "dish_8")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCartList_MissingCartIsEmpty(t *testing.T) {
	uc, _, _, _ := newCartUsecaseForTest()

	lines, err := uc.List(context.Background(), 99)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartList_SkipsDeletedMenuItems(t *testing.T) {
	uc, dishRepo, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	assert.NoError(t, uc.Add(ctx, 10, "dish_1"))
	assert.NoError(t, uc.Add(ctx, 10, "dish_2"))

	dishRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Dish{}, repo.ErrNotFound)
	dishRepo.On("FindByID", mock.Anything, int64(2)).
		Return(model.Dish{ID: 2, Name: "fried rice", Price: decimal.NewFromInt(9)}, nil)

	lines, err := uc.List(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "dish_2", lines[0].ItemKey)
}

func TestCartClear_Idempotent(t *testing.T) {
	uc, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	assert.NoError(t, uc.Add(ctx, 10, "dish_1"))
	assert.NoError(t, uc.Clear(ctx, 10))

	//既に空でも成功する
	assert.NoError(t, uc.Clear(ctx, 10))

	lines, err := uc.List(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartAdd_SeparateKeysStaySeparate(t *testing.T) {
	uc, dishRepo, setmealRepo, _ := newCartUsecaseForTest()
	ctx := context.Background()

	assert.NoError(t, uc.Add(ctx, 10, "dish_7"))
	assert.NoError(t, uc.Add(ctx, 10, "dish_7_spicy"))
	assert.NoError(t, uc.Add(ctx, 10, "setmeal_3"))

	dishRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Dish{ID: 7, Name: "mapo tofu", Price: decimal.NewFromInt(12)}, nil)
	setmealRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.Setmeal{ID: 3, Name: "lunch set", Price: decimal.NewFromInt(20)}, nil)

	lines, err := uc.List(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, lines, 3)

	//キーの辞書順で返る
	assert.Equal(t, "dish_7", lines[0].ItemKey)
	assert.Equal(t, "dish_7_spicy", lines[1].ItemKey)
	assert.Equal(t, "setmeal_3", lines[2].ItemKey)
}
