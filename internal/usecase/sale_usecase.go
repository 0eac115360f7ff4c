package usecase

import (
	"context"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"github.com/shopspring/decimal"
)

// SaleUsecase は店頭でのアクセサリ販売。
type SaleUsecase struct {
	tx       repo.TransactionManager
	saleRepo repo.AccessorySaleRepository
}

func NewSaleUsecase(tx repo.TransactionManager, saleRepo repo.AccessorySaleRepository) *SaleUsecase {
	return &SaleUsecase{tx: tx, saleRepo: saleRepo}
}

type SellInput struct {
	AccessoryID int64
	Quantity    int64
	//値引き対応のため単価は呼び出し側指定（定価の再読込はしない）
	UnitPrice decimal.Decimal
}

type SaleOutput struct {
	ID          int64           `json:"id"`
	AccessoryID int64           `json:"accessory_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	SoldByID    int64           `json:"sold_by_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Sell は在庫減算と販売記録を1トランザクションで行う。
// 在庫が足りなければ何も書かない。
func (u *SaleUsecase) Sell(ctx context.Context, actorID int64, in SellInput) (SaleOutput, error) {
	if actorID <= 0 {
		return SaleOutput{}, errUnauthorized("unauthorized")
	}
	if in.AccessoryID <= 0 {
		return SaleOutput{}, errInvalidArgument("invalid accessory_id")
	}
	if in.Quantity <= 0 {
		return SaleOutput{}, errInvalidArgument("quantity must be > 0")
	}
	if !in.UnitPrice.IsPositive() {
		return SaleOutput{}, errInvalidArgument("unit_price must be > 0")
	}

	var out SaleOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Accessories().FindByID(ctx, in.AccessoryID); err != nil {
			if err == repo.ErrNotFound {
				return errNotFound("accessory not found")
			}
			return errInternal("db error")
		}

		//在庫確認と減算は条件付きUPDATEの1文
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, model.ItemTypeAccessory, in.AccessoryID, in.Quantity)
		if err != nil {
			return errInternal("db error")
		}
		if !ok {
			return errInsufficientStock("insufficient stock")
		}

		total := in.UnitPrice.Mul(decimal.NewFromInt(in.Quantity)).Round(2)

		sale := model.AccessorySale{
			AccessoryID: in.AccessoryID,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  total,
			SoldByID:    actorID,
			CreatedAt:   time.Now(),
		}
		saleID, err := r.AccessorySales().Create(ctx, sale)
		if err != nil {
			return errInternal("db error")
		}

		out = SaleOutput{
			ID:          saleID,
			AccessoryID: sale.AccessoryID,
			Quantity:    sale.Quantity,
			UnitPrice:   sale.UnitPrice,
			TotalPrice:  sale.TotalPrice,
			SoldByID:    sale.SoldByID,
			CreatedAt:   sale.CreatedAt,
		}
		return nil
	})

	if err != nil {
		return SaleOutput{}, err
	}
	return out, nil
}

type SaleListOutput struct {
	Items []model.AccessorySale `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

func (u *SaleUsecase) List(ctx context.Context, q repo.SaleListQuery) (SaleListOutput, error) {
	if q.Page < 1 {
		return SaleListOutput{}, errInvalidArgument("invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return SaleListOutput{}, errInvalidArgument("invalid limit")
	}

	items, total, err := u.saleRepo.List(ctx, q)
	if err != nil {
		return SaleListOutput{}, errInternal("db error")
	}

	return SaleListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}
