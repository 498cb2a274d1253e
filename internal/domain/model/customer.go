package model

import "time"

// ミニプログラムの利用者。openidで一意に識別する。
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OpenID    string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"openid"`
	Name      string    `gorm:"type:varchar(32)" json:"name"`
	Phone     string    `gorm:"type:varchar(11)" json:"phone"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
