package model

import "time"

type RepairStatus string

const (
	RepairStatusPending    RepairStatus = "pending"
	RepairStatusInProgress RepairStatus = "in_progress"
	RepairStatusCompleted  RepairStatus = "completed"
	RepairStatusCancelled  RepairStatus = "cancelled"
)

func (s RepairStatus) Valid() bool {
	switch s {
	case RepairStatusPending, RepairStatusInProgress, RepairStatusCompleted, RepairStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo は通常フローの遷移だけを許可する。
// completed→in_progress は管理者の訂正用（請求書が無い場合のみ）。
func (s RepairStatus) CanTransitionTo(next RepairStatus, asAdmin bool) bool {
	switch s {
	case RepairStatusPending:
		return next == RepairStatusInProgress || next == RepairStatusCancelled
	case RepairStatusInProgress:
		return next == RepairStatusCompleted || next == RepairStatusCancelled
	case RepairStatusCompleted:
		return asAdmin && next == RepairStatusInProgress
	default:
		return false
	}
}

type RepairJob struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64        `gorm:"not null;index" json:"customer_id"`
	DeviceName  string       `gorm:"type:varchar(255);not null" json:"device_name"`
	Issue       string       `gorm:"type:text" json:"issue"`
	Status      RepairStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedByID int64        `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
