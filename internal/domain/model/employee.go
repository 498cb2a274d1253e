package model

import "time"

type Employee struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(32);not null;uniqueIndex" json:"username"`
	Name         string `gorm:"type:varchar(32);not null" json:"name"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Phone        string `gorm:"type:varchar(11)" json:"phone"`
	Sex          string `gorm:"type:varchar(2)" json:"sex"`
	IDNumber     string `gorm:"type:varchar(18)" json:"id_number"`

	//1=有効 0=ロック
	Status BinaryStatus `gorm:"not null;default:1" json:"status"`

	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
	CreateUserID int64     `gorm:"column:create_user_id" json:"create_user_id"`
	UpdateUserID int64     `gorm:"column:update_user_id" json:"update_user_id"`
}
