package model

// 従業員・カテゴリ・料理・セットのON/OFFで共通の状態コード。
type BinaryStatus int

const (
	StatusLocked BinaryStatus = 0
	StatusActive BinaryStatus = 1
)

func (s BinaryStatus) Valid() bool {
	return s == StatusLocked || s == StatusActive
}
