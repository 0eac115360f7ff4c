package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 修理に使った部品の記録。
// 単価と合計は使用時点のスナップショットで、後から部品価格を変えても変わらない。
type RepairPartUsage struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	RepairJobID  int64           `gorm:"not null;index" json:"repair_job_id"`
	PartID       int64           `gorm:"not null;index" json:"part_id"`
	QuantityUsed int64           `gorm:"not null" json:"quantity_used"`
	PricingMode  PricingMode     `gorm:"type:varchar(10);not null" json:"pricing_mode"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (RepairPartUsage) TableName() string {
	return "repair_parts"
}
