package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type RepairPartRepository interface {
	Create(ctx context.Context, usage model.RepairPartUsage) (int64, error)
	ListByRepairJobID(ctx context.Context, repairID int64) ([]model.RepairPartUsage, error)
	//同じ部品が複数回使われた場合は最新の1件
	FindLatestByRepairAndPart(ctx context.Context, repairID int64, partID int64) (model.RepairPartUsage, error)
	Delete(ctx context.Context, usageID int64) error
	DeleteByRepairJobID(ctx context.Context, repairID int64) error
	CountByPartID(ctx context.Context, partID int64) (int64, error)
}
