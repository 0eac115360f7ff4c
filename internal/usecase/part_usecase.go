package usecase

import (
	"context"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"github.com/shopspring/decimal"
)

type PartUsecase struct {
	partRepo     repo.PartRepository
	usageRepo    repo.RepairPartRepository
	billItemRepo repo.BillItemRepository
	boxRepo      repo.StorageBoxRepository
}

func NewPartUsecase(
	partRepo repo.PartRepository,
	usageRepo repo.RepairPartRepository,
	billItemRepo repo.BillItemRepository,
	boxRepo repo.StorageBoxRepository,
) *PartUsecase {
	return &PartUsecase{
		partRepo:     partRepo,
		usageRepo:    usageRepo,
		billItemRepo: billItemRepo,
		boxRepo:      boxRepo,
	}
}

type PartListOutput struct {
	Items []model.Part `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *PartUsecase) List(ctx context.Context, q repo.PartListQuery) (PartListOutput, error) {
	if q.Page < 1 {
		return PartListOutput{}, errInvalidArgument("invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return PartListOutput{}, errInvalidArgument("invalid limit")
	}

	items, total, err := u.partRepo.List(ctx, q)
	if err != nil {
		return PartListOutput{}, errInternal("db error")
	}
	return PartListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *PartUsecase) Get(ctx context.Context, partID int64) (model.Part, error) {
	if partID <= 0 {
		return model.Part{}, errInvalidArgument("invalid id")
	}

	p, err := u.partRepo.FindByID(ctx, partID)
	if err == repo.ErrNotFound {
		return model.Part{}, errNotFound("part not found")
	}
	if err != nil {
		return model.Part{}, errInternal("db error")
	}
	return p, nil
}

type CreatePartInput struct {
	Name         string
	Description  string
	RepairPrice  decimal.Decimal
	SealingPrice decimal.Decimal
	Quantity     int64
	MinQuantity  int64
	StorageBoxID *int64
}

func (u *PartUsecase) Create(ctx context.Context, actorID int64, in CreatePartInput) (model.Part, error) {
	if actorID <= 0 {
		return model.Part{}, errUnauthorized("unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Part{}, errInvalidArgument("name required")
	}
	if in.RepairPrice.IsNegative() || in.SealingPrice.IsNegative() {
		return model.Part{}, errInvalidArgument("price must be >= 0")
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return model.Part{}, errInvalidArgument("quantity must be >= 0")
	}

	if in.StorageBoxID != nil {
		if _, err := u.boxRepo.FindByID(ctx, *in.StorageBoxID); err != nil {
			if err == repo.ErrNotFound {
				return model.Part{}, errNotFound("storage box not found")
			}
			return model.Part{}, errInternal("db error")
		}
	}

	now := time.Now()
	p, err := u.partRepo.Create(ctx, model.Part{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		RepairPrice:  in.RepairPrice,
		SealingPrice: in.SealingPrice,
		Quantity:     in.Quantity,
		MinQuantity:  in.MinQuantity,
		StorageBoxID: in.StorageBoxID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Part{}, errInternal("db error")
	}
	return p, nil
}

type UpdatePartInput struct {
	Name         string
	Description  string
	RepairPrice  decimal.Decimal
	SealingPrice decimal.Decimal
	MinQuantity  int64
	StorageBoxID *int64
}

// Update は数量を触らない。数量は在庫台帳の操作だけが変更できる。
// 価格変更は過去の使用記録のスナップショットに影響しない。
func (u *PartUsecase) Update(ctx context.Context, actorID int64, partID int64, in UpdatePartInput) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if partID <= 0 {
		return errInvalidArgument("invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errInvalidArgument("name required")
	}
	if in.RepairPrice.IsNegative() || in.SealingPrice.IsNegative() {
		return errInvalidArgument("price must be >= 0")
	}
	if in.MinQuantity < 0 {
		return errInvalidArgument("min_quantity must be >= 0")
	}

	err := u.partRepo.Update(ctx, model.Part{
		ID:           partID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		RepairPrice:  in.RepairPrice,
		SealingPrice: in.SealingPrice,
		MinQuantity:  in.MinQuantity,
		StorageBoxID: in.StorageBoxID,
		UpdatedAt:    time.Now(),
	})
	if err == repo.ErrNotFound {
		return errNotFound("part not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}

// Delete は使用履歴・請求明細から参照されている部品を消さない。
func (u *PartUsecase) Delete(ctx context.Context, actorID int64, partID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if partID <= 0 {
		return errInvalidArgument("invalid id")
	}

	used, err := u.usageRepo.CountByPartID(ctx, partID)
	if err != nil {
		return errInternal("db error")
	}
	if used > 0 {
		return errConflict("part has usage history")
	}

	billed, err := u.billItemRepo.CountByItem(ctx, model.ItemTypePart, partID)
	if err != nil {
		return errInternal("db error")
	}
	if billed > 0 {
		return errConflict("part is referenced by bills")
	}

	err = u.partRepo.SoftDelete(ctx, partID)
	if err == repo.ErrNotFound {
		return errNotFound("part not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}
