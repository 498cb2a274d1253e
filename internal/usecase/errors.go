package usecase

import (
	"errors"
	"fmt"
	"time"
)

// 注文しようとしたがカートが空（または期限切れ）。
var ErrEmptyCart = errors.New("cart is empty")

type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// WrapHTTPError は元のエラーをerrors.Isで辿れるまま包む。
func WrapHTTPError(status int, message string, err error) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type Clock interface {
	Now() time.Time
}
