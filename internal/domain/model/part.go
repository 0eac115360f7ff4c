package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 部品の価格モード（修理用 / シーリング用）
type PricingMode string

const (
	PricingModeRepair PricingMode = "repair"
	PricingModeSeal   PricingMode = "seal"
)

func (m PricingMode) Valid() bool {
	return m == PricingModeRepair || m == PricingModeSeal
}

var ErrUnknownPricingMode = errors.New("unknown pricing mode")

type Part struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	RepairPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"repair_price"`
	SealingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sealing_price"`
	Quantity     int64           `gorm:"not null;default:0" json:"quantity"`
	MinQuantity  int64           `gorm:"not null;default:0" json:"min_quantity"`
	StorageBoxID *int64          `gorm:"index" json:"storage_box_id"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// UnitPrice はモードに応じた単価を返す（副作用なし）
func (p Part) UnitPrice(mode PricingMode) (decimal.Decimal, error) {
	switch mode {
	case PricingModeRepair:
		return p.RepairPrice, nil
	case PricingModeSeal:
		return p.SealingPrice, nil
	default:
		return decimal.Zero, ErrUnknownPricingMode
	}
}
