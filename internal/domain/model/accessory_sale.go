package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 店頭でのアクセサリ販売。請求書とは独立した在庫減算イベント。
type AccessorySale struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	AccessoryID int64           `gorm:"not null;index" json:"accessory_id"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	SoldByID    int64           `gorm:"not null;index" json:"sold_by_id"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
