package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 明細行の種別（部品 / アクセサリ）
type ItemType string

const (
	ItemTypePart      ItemType = "part"
	ItemTypeAccessory ItemType = "accessory"
)

func (t ItemType) Valid() bool {
	return t == ItemTypePart || t == ItemTypeAccessory
}

type BillItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID      int64           `gorm:"not null;index" json:"bill_id"`
	ItemType    ItemType        `gorm:"type:varchar(10);not null" json:"item_type"`
	ItemID      int64           `gorm:"not null;index" json:"item_id"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	PricingMode *PricingMode    `gorm:"type:varchar(10)" json:"pricing_mode"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
