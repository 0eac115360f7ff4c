package usecase

import (
	"context"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"github.com/shopspring/decimal"
)

// RepairUsecase は修理ジョブと使用部品の管理。
// 部品の追加・取り外しは在庫台帳と使用記録を1トランザクションで動かす。
type RepairUsecase struct {
	tx           repo.TransactionManager
	repairRepo   repo.RepairJobRepository
	usageRepo    repo.RepairPartRepository
	customerRepo repo.CustomerRepository
}

func NewRepairUsecase(
	tx repo.TransactionManager,
	repairRepo repo.RepairJobRepository,
	usageRepo repo.RepairPartRepository,
	customerRepo repo.CustomerRepository,
) *RepairUsecase {
	return &RepairUsecase{
		tx:           tx,
		repairRepo:   repairRepo,
		usageRepo:    usageRepo,
		customerRepo: customerRepo,
	}
}

type CreateRepairInput struct {
	CustomerID int64
	DeviceName string
	Issue      string
}

type RepairPartOutput struct {
	ID           int64             `json:"id"`
	PartID       int64             `json:"part_id"`
	QuantityUsed int64             `json:"quantity_used"`
	PricingMode  model.PricingMode `json:"pricing_mode"`
	UnitPrice    decimal.Decimal   `json:"unit_price"`
	TotalPrice   decimal.Decimal   `json:"total_price"`
}

type RepairOutput struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customer_id"`
	DeviceName string             `json:"device_name"`
	Issue      string             `json:"issue"`
	Status     model.RepairStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	Parts      []RepairPartOutput `json:"parts"`
}

func (u *RepairUsecase) Create(ctx context.Context, actorID int64, in CreateRepairInput) (RepairOutput, error) {
	if actorID <= 0 {
		return RepairOutput{}, errUnauthorized("unauthorized")
	}
	if in.CustomerID <= 0 {
		return RepairOutput{}, errInvalidArgument("invalid customer_id")
	}
	if strings.TrimSpace(in.DeviceName) == "" {
		return RepairOutput{}, errInvalidArgument("device_name required")
	}

	if _, err := u.customerRepo.FindByID(ctx, in.CustomerID); err != nil {
		if err == repo.ErrNotFound {
			return RepairOutput{}, errNotFound("customer not found")
		}
		return RepairOutput{}, errInternal("db error")
	}

	now := time.Now()
	job := model.RepairJob{
		CustomerID:  in.CustomerID,
		DeviceName:  strings.TrimSpace(in.DeviceName),
		Issue:       in.Issue,
		Status:      model.RepairStatusPending,
		CreatedByID: actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	jobID, err := u.repairRepo.Create(ctx, job)
	if err != nil {
		return RepairOutput{}, errInternal("db error")
	}
	job.ID = jobID

	return toRepairOutput(job, nil), nil
}

type RepairListOutput struct {
	Items []model.RepairJob `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func (u *RepairUsecase) List(ctx context.Context, q repo.RepairListQuery) (RepairListOutput, error) {
	if q.Page < 1 {
		return RepairListOutput{}, errInvalidArgument("invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return RepairListOutput{}, errInvalidArgument("invalid limit")
	}
	if q.Status != "" && !model.RepairStatus(q.Status).Valid() {
		return RepairListOutput{}, errInvalidArgument("invalid status")
	}

	items, total, err := u.repairRepo.List(ctx, q)
	if err != nil {
		return RepairListOutput{}, errInternal("db error")
	}
	return RepairListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *RepairUsecase) Get(ctx context.Context, repairID int64) (RepairOutput, error) {
	if repairID <= 0 {
		return RepairOutput{}, errInvalidArgument("invalid id")
	}

	job, err := u.repairRepo.FindByID(ctx, repairID)
	if err == repo.ErrNotFound {
		return RepairOutput{}, errNotFound("repair not found")
	}
	if err != nil {
		return RepairOutput{}, errInternal("db error")
	}

	usages, err := u.usageRepo.ListByRepairJobID(ctx, repairID)
	if err != nil {
		return RepairOutput{}, errInternal("db error")
	}

	return toRepairOutput(job, usages), nil
}

// UpdateStatus は状態遷移を検証して更新する。
// completed→in_progress は管理者の訂正専用で、請求書が既にあるなら拒否。
func (u *RepairUsecase) UpdateStatus(ctx context.Context, actorID int64, role model.Role, repairID int64, status model.RepairStatus) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if repairID <= 0 {
		return errInvalidArgument("invalid id")
	}
	if !status.Valid() {
		return errInvalidArgument("invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		job, err := r.RepairJobs().FindByID(ctx, repairID)
		if err == repo.ErrNotFound {
			return errNotFound("repair not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		if !job.Status.CanTransitionTo(status, role == model.RoleAdmin) {
			return errInvalidArgument("invalid status transition")
		}

		if job.Status == model.RepairStatusCompleted {
			//訂正で差し戻す場合、請求済みなら不可
			_, billed, err := r.Bills().FindByRepairJobID(ctx, repairID)
			if err != nil {
				return errInternal("db error")
			}
			if billed {
				return errConflict("repair already billed")
			}
		}

		if err := r.RepairJobs().UpdateStatus(ctx, repairID, status); err != nil {
			return errInternal("db error")
		}
		return nil
	})
}

type AddPartInput struct {
	PartID      int64
	Quantity    int64
	PricingMode model.PricingMode
}

// AddPart は価格解決・在庫減算・使用記録を1トランザクションで行う。
// 在庫が足りなければ使用記録は書かれない。
// 完了・キャンセル済みの修理への追加は認めない（請求書とずれるため）。
func (u *RepairUsecase) AddPart(ctx context.Context, actorID int64, repairID int64, in AddPartInput) (RepairPartOutput, error) {
	if actorID <= 0 {
		return RepairPartOutput{}, errUnauthorized("unauthorized")
	}
	if repairID <= 0 {
		return RepairPartOutput{}, errInvalidArgument("invalid repair id")
	}
	if in.PartID <= 0 {
		return RepairPartOutput{}, errInvalidArgument("invalid part_id")
	}
	if in.Quantity <= 0 {
		return RepairPartOutput{}, errInvalidArgument("quantity must be > 0")
	}
	if !in.PricingMode.Valid() {
		return RepairPartOutput{}, errInvalidArgument("invalid pricing_mode")
	}

	var out RepairPartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		job, err := r.RepairJobs().FindByID(ctx, repairID)
		if err == repo.ErrNotFound {
			return errNotFound("repair not found")
		}
		if err != nil {
			return errInternal("db error")
		}
		if job.Status == model.RepairStatusCompleted || job.Status == model.RepairStatusCancelled {
			return errInvalidArgument("repair is not open")
		}

		p, err := r.Parts().FindByID(ctx, in.PartID)
		if err == repo.ErrNotFound {
			return errNotFound("part not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		//使用時点の単価スナップショット
		unit, err := p.UnitPrice(in.PricingMode)
		if err != nil {
			return errInvalidArgument("invalid pricing_mode")
		}

		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, model.ItemTypePart, in.PartID, in.Quantity)
		if err != nil {
			return errInternal("db error")
		}
		if !ok {
			return errInsufficientStock("insufficient stock")
		}

		usage := model.RepairPartUsage{
			RepairJobID:  repairID,
			PartID:       in.PartID,
			QuantityUsed: in.Quantity,
			PricingMode:  in.PricingMode,
			UnitPrice:    unit,
			TotalPrice:   unit.Mul(decimal.NewFromInt(in.Quantity)).Round(2),
			CreatedAt:    time.Now(),
		}
		usageID, err := r.RepairParts().Create(ctx, usage)
		if err != nil {
			return errInternal("db error")
		}

		out = RepairPartOutput{
			ID:           usageID,
			PartID:       usage.PartID,
			QuantityUsed: usage.QuantityUsed,
			PricingMode:  usage.PricingMode,
			UnitPrice:    usage.UnitPrice,
			TotalPrice:   usage.TotalPrice,
		}
		return nil
	})

	if err != nil {
		return RepairPartOutput{}, err
	}
	return out, nil
}

// RemovePart は最新の使用記録1件を取り消して在庫を戻す。
func (u *RepairUsecase) RemovePart(ctx context.Context, actorID int64, repairID int64, partID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if repairID <= 0 || partID <= 0 {
		return errInvalidArgument("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		job, err := r.RepairJobs().FindByID(ctx, repairID)
		if err == repo.ErrNotFound {
			return errNotFound("repair not found")
		}
		if err != nil {
			return errInternal("db error")
		}
		if job.Status == model.RepairStatusCompleted || job.Status == model.RepairStatusCancelled {
			return errInvalidArgument("repair is not open")
		}

		usage, err := r.RepairParts().FindLatestByRepairAndPart(ctx, repairID, partID)
		if err == repo.ErrNotFound {
			return errNotFound("usage not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		//減らした分だけそのまま戻す
		if err := r.Inventory().IncreaseStock(ctx, model.ItemTypePart, partID, usage.QuantityUsed); err != nil {
			return errInternal("db error")
		}
		if err := r.RepairParts().Delete(ctx, usage.ID); err != nil {
			return errInternal("db error")
		}
		return nil
	})
}

// Delete は修理ジョブを使用記録ごと削除する。
// 全使用分の在庫戻しと削除は1トランザクション。請求済みなら全体を中止。
func (u *RepairUsecase) Delete(ctx context.Context, actorID int64, repairID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if repairID <= 0 {
		return errInvalidArgument("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.RepairJobs().FindByID(ctx, repairID); err != nil {
			if err == repo.ErrNotFound {
				return errNotFound("repair not found")
			}
			return errInternal("db error")
		}

		_, billed, err := r.Bills().FindByRepairJobID(ctx, repairID)
		if err != nil {
			return errInternal("db error")
		}
		if billed {
			return errConflict("repair already billed")
		}

		usages, err := r.RepairParts().ListByRepairJobID(ctx, repairID)
		if err != nil {
			return errInternal("db error")
		}
		for _, usage := range usages {
			if err := r.Inventory().IncreaseStock(ctx, model.ItemTypePart, usage.PartID, usage.QuantityUsed); err != nil {
				return errInternal("db error")
			}
		}

		if err := r.RepairParts().DeleteByRepairJobID(ctx, repairID); err != nil {
			return errInternal("db error")
		}
		if err := r.RepairJobs().Delete(ctx, repairID); err != nil {
			return errInternal("db error")
		}
		return nil
	})
}

func toRepairOutput(job model.RepairJob, usages []model.RepairPartUsage) RepairOutput {
	parts := make([]RepairPartOutput, 0, len(usages))
	for _, usage := range usages {
		parts = append(parts, RepairPartOutput{
			ID:           usage.ID,
			PartID:       usage.PartID,
			QuantityUsed: usage.QuantityUsed,
			PricingMode:  usage.PricingMode,
			UnitPrice:    usage.UnitPrice,
			TotalPrice:   usage.TotalPrice,
		})
	}

	return RepairOutput{
		ID:         job.ID,
		CustomerID: job.CustomerID,
		DeviceName: job.DeviceName,
		Issue:      job.Issue,
		Status:     job.Status,
		CreatedAt:  job.CreatedAt,
		Parts:      parts,
	}
}
