package model

import "time"

type CategoryType int

const (
	CategoryTypeDish    CategoryType = 1
	CategoryTypeSetmeal CategoryType = 2
)

type Category struct {
	ID   int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string       `gorm:"type:varchar(32);not null;uniqueIndex" json:"name"`
	Type CategoryType `gorm:"not null;index" json:"type"`

	//表示順（小さいほど先）
	Sort int `gorm:"not null;uniqueIndex" json:"sort"`

	Status BinaryStatus `gorm:"not null;default:1" json:"status"`

	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
	CreateUserID int64     `gorm:"column:create_user_id" json:"create_user_id"`
	UpdateUserID int64     `gorm:"column:update_user_id" json:"update_user_id"`
}
