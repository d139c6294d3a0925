package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spacyk/eshop-recipe/internal/pkg/util"
)

const (
	CategorySexy    = "S"
	CategoryFine    = "SW"
	CategoryMagical = "OW"
)

const (
	LabelPrimary   = "P"
	LabelSecondary = "S"
	LabelDanger    = "D"
)

type Item struct {
	ItemID      uint            `gorm:"primaryKey" json:"item_id"`
	Title       string          `gorm:"not null;type:varchar(100)" json:"title"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Category    string          `gorm:"not null;type:varchar(2);default:'S'" json:"category"`
	Label       string          `gorm:"not null;type:varchar(1);default:'P'" json:"label"`
	Slug        string          `gorm:"not null;type:varchar(100);unique" json:"slug"`
	Description string          `gorm:"not null;type:text;default:'Very durable and hot product'" json:"description"`
	Stock       uint            `gorm:"not null;type:int;default:1" json:"stock"`
	Image       string          `gorm:"type:varchar(255)" json:"image,omitempty"`
	OrderItems  []OrderItem     `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"` // 一對多，級聯刪除
	BaseModel   `json:"-"`
}

// BeforeCreate slug沒有指定時由title產生
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.Slug == "" {
		i.Slug = util.Slugify(i.Title)
	}
	return nil
}
