package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus int

const (
	OrderStatusUnpaid       OrderStatus = 1
	OrderStatusUnaccepted   OrderStatus = 2
	OrderStatusAccepted     OrderStatus = 3
	OrderStatusDistributing OrderStatus = 4
	OrderStatusCompleted    OrderStatus = 5
	OrderStatusCanceled     OrderStatus = 6
)

func (s OrderStatus) Valid() bool {
	return s >= OrderStatusUnpaid && s <= OrderStatusCanceled
}

// 完了とキャンセルからは動かせない。
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

type PayStatus int

const (
	PayStatusUnpaid   PayStatus = 1
	PayStatusPaid     PayStatus = 2
	PayStatusRefunded PayStatus = 3
)

type PayMethod int

const (
	PayMethodWechat PayMethod = 1
	PayMethodAlipay PayMethod = 2
)

// 注文。番号・宛先・金額は作成時に確定し、以後はstatusと各時刻だけ動く。
type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Number string `gorm:"type:varchar(50);not null;uniqueIndex" json:"number"`

	Status OrderStatus `gorm:"not null;default:1;index" json:"status"`

	CustomerID    int64 `gorm:"not null;index" json:"customer_id"`
	AddressBookID int64 `gorm:"not null" json:"address_book_id"`

	OrderTime    time.Time  `gorm:"not null;autoCreateTime" json:"order_time"`
	CheckoutTime *time.Time `json:"checkout_time"`

	PayMethod PayMethod `gorm:"not null" json:"pay_method"`
	PayStatus PayStatus `gorm:"not null;default:1" json:"pay_status"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Remark string          `gorm:"type:varchar(100)" json:"remark"`

	//住所帳からのスナップショット（後から住所を変えても過去注文は動かない）
	Phone     string `gorm:"type:varchar(11)" json:"phone"`
	Address   string `gorm:"type:varchar(255)" json:"address"`
	UserName  string `gorm:"type:varchar(32)" json:"user_name"`
	Consignee string `gorm:"type:varchar(32)" json:"consignee"`

	CancelReason    string     `gorm:"type:varchar(255)" json:"cancel_reason"`
	RejectionReason string     `gorm:"type:varchar(255)" json:"rejection_reason"`
	CancelTime      *time.Time `json:"cancel_time"`

	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`

	//1=すぐ届ける 0=指定時間に合わせる
	DeliveryStatus int        `gorm:"not null" json:"delivery_status"`
	DeliveryTime   *time.Time `json:"delivery_time"`

	PackAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pack_amount"`
	TablewareNumber int             `gorm:"not null" json:"tableware_number"`

	//1=必要 0=不要
	TablewareStatus int `gorm:"not null" json:"tableware_status"`
}
