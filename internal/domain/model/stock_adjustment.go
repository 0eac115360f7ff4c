package model

import "time"

type AdjustMode string

const (
	AdjustModeAdd      AdjustMode = "add"
	AdjustModeSubtract AdjustMode = "subtract"
	AdjustModeSet      AdjustMode = "set"
)

func (m AdjustMode) Valid() bool {
	return m == AdjustModeAdd || m == AdjustModeSubtract || m == AdjustModeSet
}

// 在庫調整の履歴
type StockAdjustment struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemType  ItemType   `gorm:"type:varchar(10);not null;index" json:"item_type"`
	ItemID    int64      `gorm:"not null;index" json:"item_id"`
	ActorID   int64      `gorm:"not null;index" json:"actor_id"`
	Mode      AdjustMode `gorm:"type:varchar(10);not null" json:"mode"`
	Delta     int64      `gorm:"not null" json:"delta"`
	Reason    string     `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
