package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentOptionStripe = "stripe"
)

type Order struct {
	OrderID          uint            `gorm:"primaryKey" json:"order_id"`
	UserID           int             `gorm:"not null;index" json:"user_id"` // 外鍵，關聯到外部認證中心的用戶
	OrderItems       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
	DateCreated      time.Time       `gorm:"not null;default:now()" json:"date_created"`
	DateOrdered      *time.Time      `gorm:"null" json:"date_ordered,omitempty"`
	IsOrdered        bool            `gorm:"not null;default:false" json:"is_ordered"`
	BillingAddressID *uint           `gorm:"null" json:"billing_address_id,omitempty"`
	BillingAddress   *BillingAddress `gorm:"foreignKey:BillingAddressID" json:"billing_address,omitempty"`
	PaymentOption    string          `gorm:"type:varchar(20)" json:"payment_option,omitempty"`
	BaseModel        `json:"-"`
}

// TotalPrice 即時計算訂單總金額，不做任何快取
// OrderItems必須先Preload Item
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, orderItem := range o.OrderItems {
		total = total.Add(orderItem.TotalItemPrice())
	}
	return total
}

// TotalCount 即時計算訂單商品總數量
func (o *Order) TotalCount() int {
	count := 0
	for _, orderItem := range o.OrderItems {
		count += orderItem.Quantity
	}
	return count
}

type OrderItem struct {
	OrderID   uint `gorm:"primaryKey" json:"order_id"` // 外鍵，關聯到 Order
	ItemID    uint `gorm:"primaryKey" json:"item_id"`  // 外鍵，關聯到 Item
	Item      Item `gorm:"foreignKey:ItemID" json:"item"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
	BaseModel `json:"-"`
}

func (oi *OrderItem) TotalItemPrice() decimal.Decimal {
	return oi.Item.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

type BillingAddress struct {
	BillingAddressID uint   `gorm:"primaryKey" json:"billing_address_id"`
	UserID           int    `gorm:"not null;index" json:"user_id"`
	StreetAddress    string `gorm:"not null;type:varchar(100)" json:"street_address"`
	Country          string `gorm:"not null;type:varchar(2)" json:"country"`
	Zip              string `gorm:"not null;type:varchar(100)" json:"zip"`
	BaseModel        `json:"-"`
}
