package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusPaid
}

// 請求書。修理1件につき最大1枚（repair_job_idのuniqueIndexで保証）。
// アクセサリのみの請求書は RepairJobID が null。
type Bill struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BillNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"bill_number"`
	RepairJobID   *int64          `gorm:"uniqueIndex" json:"repair_job_id"`
	CustomerID    *int64          `gorm:"index" json:"customer_id"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax_amount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(10);not null;index" json:"payment_status"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method"`
	CreatedByID   int64           `gorm:"not null;index" json:"created_by_id"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
