package status

import (
	"testing"

	"takeout/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		previous  model.BinaryStatus
		requested model.BinaryStatus
		want      Outcome
	}{
		{"active to active", model.StatusActive, model.StatusActive, AlreadyInState},
		{"locked to locked", model.StatusLocked, model.StatusLocked, AlreadyInState},
		{"locked to active", model.StatusLocked, model.StatusActive, Activated},
		{"active to locked", model.StatusActive, model.StatusLocked, Locked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.previous, tc.requested)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_InvalidCode(t *testing.T) {
	_, err := Classify(model.StatusActive, model.BinaryStatus(2))
	assert.ErrorIs(t, err, ErrInvalidStatusCode)

	_, err = Classify(model.StatusLocked, model.BinaryStatus(-1))
	assert.ErrorIs(t, err, ErrInvalidStatusCode)
}

// 同じ入力を何度呼んでも結果は変わらない
func TestClassify_Idempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, err := Classify(model.StatusActive, model.StatusActive)
		assert.NoError(t, err)
		assert.Equal(t, AlreadyInState, got)
	}
}

func TestMessage(t *testing.T) {
	msg, err := Message("Dish", 7, model.StatusActive, model.StatusActive)
	assert.NoError(t, err)
	assert.Equal(t, "Dish (id = 7) was already ACTIVATED.", msg)

	msg, err = Message("Employee", 3, model.StatusLocked, model.StatusActive)
	assert.NoError(t, err)
	assert.Equal(t, "Employee (id = 3) was ACTIVATED.", msg)

	msg, err = Message("Category", 5, model.StatusActive, model.StatusLocked)
	assert.NoError(t, err)
	assert.Equal(t, "Category (id = 5) was LOCKED.", msg)

	_, err = Message("Setmeal", 1, model.StatusActive, model.BinaryStatus(9))
	assert.ErrorIs(t, err, ErrInvalidStatusCode)
}
