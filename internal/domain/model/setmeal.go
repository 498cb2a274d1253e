package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 複数料理をまとめた定食。
type Setmeal struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"name"`
	CategoryID int64           `gorm:"not null;index" json:"category_id"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Image       string       `gorm:"type:varchar(255)" json:"image"`
	Description string       `gorm:"type:varchar(255)" json:"description"`
	Status      BinaryStatus `gorm:"not null;default:1" json:"status"`

	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
	CreateUserID int64     `gorm:"column:create_user_id" json:"create_user_id"`
	UpdateUserID int64     `gorm:"column:update_user_id" json:"update_user_id"`
}

// セット内の料理（名前と価格はセット作成時の控え）。
type SetmealDish struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SetmealID int64           `gorm:"not null;index" json:"setmeal_id"`
	DishID    int64           `gorm:"not null;index" json:"dish_id"`
	Name      string          `gorm:"type:varchar(32);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Copies    int             `gorm:"not null" json:"copies"`
}
