package usecase

import (
	"context"
	"strings"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"
)

// InventoryUsecase は在庫台帳の管理操作（調整と低在庫の確認）。
// 業務イベント起点の減算・戻しは修理/販売のusecaseがトランザクション内で行う。
type InventoryUsecase struct {
	tx            repo.TransactionManager
	partRepo      repo.PartRepository
	accessoryRepo repo.AccessoryRepository
}

func NewInventoryUsecase(
	tx repo.TransactionManager,
	partRepo repo.PartRepository,
	accessoryRepo repo.AccessoryRepository,
) *InventoryUsecase {
	return &InventoryUsecase{
		tx:            tx,
		partRepo:      partRepo,
		accessoryRepo: accessoryRepo,
	}
}

type AdjustStockInput struct {
	ItemType model.ItemType
	ItemID   int64
	Mode     model.AdjustMode
	Quantity int64
	Reason   string
}

type AdjustStockOutput struct {
	ItemType model.ItemType `json:"item_type"`
	ItemID   int64          `json:"item_id"`
	Quantity int64          `json:"quantity"`
	Delta    int64          `json:"delta"`
}

// Adjust は管理者用の在庫調整。subtractは0未満にしない。
// 調整と履歴作成は1トランザクション。
func (u *InventoryUsecase) Adjust(ctx context.Context, actorID int64, in AdjustStockInput) (AdjustStockOutput, error) {
	if actorID <= 0 {
		return AdjustStockOutput{}, errUnauthorized("unauthorized")
	}
	if !in.ItemType.Valid() {
		return AdjustStockOutput{}, errInvalidArgument("invalid item_type")
	}
	if in.ItemID <= 0 {
		return AdjustStockOutput{}, errInvalidArgument("invalid item_id")
	}
	if !in.Mode.Valid() {
		return AdjustStockOutput{}, errInvalidArgument("invalid mode")
	}
	if in.Quantity < 0 {
		return AdjustStockOutput{}, errInvalidArgument("quantity must be >= 0")
	}
	if (in.Mode == model.AdjustModeAdd || in.Mode == model.AdjustModeSubtract) && in.Quantity == 0 {
		return AdjustStockOutput{}, errInvalidArgument("quantity must be > 0")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return AdjustStockOutput{}, errInvalidArgument("reason required")
	}

	var out AdjustStockOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Inventory().CurrentQuantity(ctx, in.ItemType, in.ItemID)
		if err == repo.ErrNotFound {
			return errNotFound("item not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		switch in.Mode {
		case model.AdjustModeAdd:
			err = r.Inventory().IncreaseStock(ctx, in.ItemType, in.ItemID, in.Quantity)
		case model.AdjustModeSubtract:
			err = r.Inventory().SubtractStockFloored(ctx, in.ItemType, in.ItemID, in.Quantity)
		case model.AdjustModeSet:
			err = r.Inventory().SetStock(ctx, in.ItemType, in.ItemID, in.Quantity)
		}
		if err == repo.ErrNotFound {
			return errNotFound("item not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		after, err := r.Inventory().CurrentQuantity(ctx, in.ItemType, in.ItemID)
		if err != nil {
			return errInternal("db error")
		}

		//実際の増減で履歴を残す（subtractの床打ちも正しい差分になる）
		if err := r.Inventory().CreateAdjustment(ctx, model.StockAdjustment{
			ItemType: in.ItemType,
			ItemID:   in.ItemID,
			ActorID:  actorID,
			Mode:     in.Mode,
			Delta:    after - before,
			Reason:   strings.TrimSpace(in.Reason),
		}); err != nil {
			return errInternal("db error")
		}

		out = AdjustStockOutput{
			ItemType: in.ItemType,
			ItemID:   in.ItemID,
			Quantity: after,
			Delta:    after - before,
		}
		return nil
	})

	if err != nil {
		return AdjustStockOutput{}, err
	}
	return out, nil
}

// LowStockParts は最低在庫数を下回った部品の一覧
func (u *InventoryUsecase) LowStockParts(ctx context.Context) ([]model.Part, error) {
	items, err := u.partRepo.ListLowStock(ctx)
	if err != nil {
		return []model.Part{}, errInternal("db error")
	}
	return items, nil
}

func (u *InventoryUsecase) LowStockAccessories(ctx context.Context) ([]model.Accessory, error) {
	items, err := u.accessoryRepo.ListLowStock(ctx)
	if err != nil {
		return []model.Accessory{}, errInternal("db error")
	}
	return items, nil
}
