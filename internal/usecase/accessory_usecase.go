package usecase

import (
	"context"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"github.com/shopspring/decimal"
)

type AccessoryUsecase struct {
	accessoryRepo repo.AccessoryRepository
	saleRepo      repo.AccessorySaleRepository
	billItemRepo  repo.BillItemRepository
}

func NewAccessoryUsecase(
	accessoryRepo repo.AccessoryRepository,
	saleRepo repo.AccessorySaleRepository,
	billItemRepo repo.BillItemRepository,
) *AccessoryUsecase {
	return &AccessoryUsecase{
		accessoryRepo: accessoryRepo,
		saleRepo:      saleRepo,
		billItemRepo:  billItemRepo,
	}
}

type AccessoryListOutput struct {
	Items []model.Accessory `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func (u *AccessoryUsecase) List(ctx context.Context, q repo.AccessoryListQuery) (AccessoryListOutput, error) {
	if q.Page < 1 {
		return AccessoryListOutput{}, errInvalidArgument("invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return AccessoryListOutput{}, errInvalidArgument("invalid limit")
	}

	items, total, err := u.accessoryRepo.List(ctx, q)
	if err != nil {
		return AccessoryListOutput{}, errInternal("db error")
	}
	return AccessoryListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *AccessoryUsecase) Get(ctx context.Context, accessoryID int64) (model.Accessory, error) {
	if accessoryID <= 0 {
		return model.Accessory{}, errInvalidArgument("invalid id")
	}

	a, err := u.accessoryRepo.FindByID(ctx, accessoryID)
	if err == repo.ErrNotFound {
		return model.Accessory{}, errNotFound("accessory not found")
	}
	if err != nil {
		return model.Accessory{}, errInternal("db error")
	}
	return a, nil
}

type CreateAccessoryInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int64
	MinQuantity int64
}

func (u *AccessoryUsecase) Create(ctx context.Context, actorID int64, in CreateAccessoryInput) (model.Accessory, error) {
	if actorID <= 0 {
		return model.Accessory{}, errUnauthorized("unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Accessory{}, errInvalidArgument("name required")
	}
	if in.Price.IsNegative() {
		return model.Accessory{}, errInvalidArgument("price must be >= 0")
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return model.Accessory{}, errInvalidArgument("quantity must be >= 0")
	}

	now := time.Now()
	a, err := u.accessoryRepo.Create(ctx, model.Accessory{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Accessory{}, errInternal("db error")
	}
	return a, nil
}

type UpdateAccessoryInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	MinQuantity int64
}

// Update は数量を触らない（在庫台帳の担当）。
func (u *AccessoryUsecase) Update(ctx context.Context, actorID int64, accessoryID int64, in UpdateAccessoryInput) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if accessoryID <= 0 {
		return errInvalidArgument("invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errInvalidArgument("name required")
	}
	if in.Price.IsNegative() {
		return errInvalidArgument("price must be >= 0")
	}
	if in.MinQuantity < 0 {
		return errInvalidArgument("min_quantity must be >= 0")
	}

	err := u.accessoryRepo.Update(ctx, model.Accessory{
		ID:          accessoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		MinQuantity: in.MinQuantity,
		UpdatedAt:   time.Now(),
	})
	if err == repo.ErrNotFound {
		return errNotFound("accessory not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}

// Delete は販売履歴・請求明細から参照されているアクセサリを消さない。
func (u *AccessoryUsecase) Delete(ctx context.Context, actorID int64, accessoryID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if accessoryID <= 0 {
		return errInvalidArgument("invalid id")
	}

	sold, err := u.saleRepo.CountByAccessoryID(ctx, accessoryID)
	if err != nil {
		return errInternal("db error")
	}
	if sold > 0 {
		return errConflict("accessory has sale history")
	}

	billed, err := u.billItemRepo.CountByItem(ctx, model.ItemTypeAccessory, accessoryID)
	if err != nil {
		return errInternal("db error")
	}
	if billed > 0 {
		return errConflict("accessory is referenced by bills")
	}

	err = u.accessoryRepo.SoftDelete(ctx, accessoryID)
	if err == repo.ErrNotFound {
		return errNotFound("accessory not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}
