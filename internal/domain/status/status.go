// Package status は従業員・カテゴリ・料理・セット共通のON/OFF切替を判定する。
// 判定はメッセージ選択のためだけに使い、書き込み自体は止めない。
package status

import (
	"errors"
	"fmt"

	"takeout/internal/domain/model"
)

// 要求されたコードが0/1以外。
var ErrInvalidStatusCode = errors.New("status code is not correct")

type Outcome int

const (
	//すでに要求された状態だった
	AlreadyInState Outcome = iota
	//0→1
	Activated
	//1→0
	Locked
)

// Classify は(現在,要求)の組を結果に分類する。
func Classify(previous, requested model.BinaryStatus) (Outcome, error) {
	if !requested.Valid() {
		return 0, ErrInvalidStatusCode
	}

	switch {
	case previous == requested:
		return AlreadyInState, nil
	case requested == model.StatusActive:
		return Activated, nil
	default:
		return Locked, nil
	}
}

// Message は切替結果の表示文を返す。entityは"Dish"や"Employee"など。
func Message(entity string, id int64, previous, requested model.BinaryStatus) (string, error) {
	outcome, err := Classify(previous, requested)
	if err != nil {
		return "", err
	}

	switch outcome {
	case AlreadyInState:
		if requested == model.StatusActive {
			return fmt.Sprintf("%s (id = %d) was already ACTIVATED.", entity, id), nil
		}
		return fmt.Sprintf("%s (id = %d) was already LOCKED.", entity, id), nil
	case Activated:
		return fmt.Sprintf("%s (id = %d) was ACTIVATED.", entity, id), nil
	default:
		return fmt.Sprintf("%s (id = %d) was LOCKED.", entity, id), nil
	}
}
