package model

import "time"

// 配送先住所
type AddressBook struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64  `gorm:"not null;index" json:"customer_id"`

	//宛名
	Consignee string `gorm:"type:varchar(32);not null" json:"consignee"`

	Sex string `gorm:"type:varchar(2)" json:"sex"`

	//電話番号
	Phone string `gorm:"type:varchar(11);not null" json:"phone"`

	ProvinceName string `gorm:"type:varchar(32)" json:"province_name"`
	CityName     string `gorm:"type:varchar(32)" json:"city_name"`
	DistrictName string `gorm:"type:varchar(32)" json:"district_name"`

	//番地など
	Detail string `gorm:"type:varchar(255);not null" json:"detail"`

	//自宅/会社など
	Label string `gorm:"type:varchar(32)" json:"label"`

	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// FullAddress は注文へスナップショットする表示用住所。
func (a AddressBook) FullAddress() string {
	return a.ProvinceName + a.CityName + a.DistrictName + a.Detail
}
