package usecase

import (
	"context"
	"testing"

	"takeout/internal/domain/model"
	"takeout/internal/infra/cache"

	"github.com/stretchr/testify/assert"
)

func TestShopStatus_DefaultsToClosed(t *testing.T) {
	uc := NewShopUsecase(cache.NewMemoryStore())

	s, err := uc.Status(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, model.StatusLocked, s)
}

func TestShopStatus_SetAndGet(t *testing.T) {
	uc := NewShopUsecase(cache.NewMemoryStore())
	ctx := context.Background()

	assert.NoError(t, uc.SetStatus(ctx, model.StatusActive))

	s, err := uc.Status(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusActive, s)

	assert.NoError(t, uc.SetStatus(ctx, model.StatusLocked))

	s, err = uc.Status(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusLocked, s)
}

func TestShopSetStatus_RejectsInvalidCode(t *testing.T) {
	uc := NewShopUsecase(cache.NewMemoryStore())

	err := uc.SetStatus(context.Background(), model.BinaryStatus(2))

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}
