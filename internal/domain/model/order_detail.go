package model

import "github.com/shopspring/decimal"

// 注文明細。名前・画像・単価は注文時点のスナップショット。
// DishIDとSetmealIDはどちらか一方だけが入る。
type OrderDetail struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64  `gorm:"not null;index" json:"order_id"`
	Name    string `gorm:"type:varchar(32);not null" json:"name"`
	Image   string `gorm:"type:varchar(255)" json:"image"`

	DishID    *int64 `gorm:"index" json:"dish_id"`
	SetmealID *int64 `gorm:"index" json:"setmeal_id"`

	DishFlavor string `gorm:"type:varchar(32)" json:"dish_flavor"`

	//個数
	Number int `gorm:"not null" json:"number"`

	//単価（注文時点）
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
}
