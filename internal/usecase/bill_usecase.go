package usecase

import (
	"context"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillUsecase は請求書の組み立て。
// 修理からの請求は在庫を触らない（部品追加時に減算済み）。
// アクセサリカートからの請求は在庫減算・販売記録・明細作成を1トランザクションで行う。
type BillUsecase struct {
	tx           repo.TransactionManager
	billRepo     repo.BillRepository
	billItemRepo repo.BillItemRepository
}

func NewBillUsecase(
	tx repo.TransactionManager,
	billRepo repo.BillRepository,
	billItemRepo repo.BillItemRepository,
) *BillUsecase {
	return &BillUsecase{
		tx:           tx,
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
	}
}

type BillItemOutput struct {
	ID          int64              `json:"id"`
	ItemType    model.ItemType     `json:"item_type"`
	ItemID      int64              `json:"item_id"`
	Quantity    int64              `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	TotalPrice  decimal.Decimal    `json:"total_price"`
	PricingMode *model.PricingMode `json:"pricing_mode,omitempty"`
}

type BillOutput struct {
	ID            int64               `json:"id"`
	BillNumber    string              `json:"bill_number"`
	RepairJobID   *int64              `json:"repair_job_id"`
	CustomerID    *int64              `json:"customer_id"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxRate       decimal.Decimal     `json:"tax_rate"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []BillItemOutput    `json:"items"`
}

type GenerateRepairBillInput struct {
	RepairJobID int64
	//nilなら設定の既定税率
	TaxRate *decimal.Decimal
}

// GenerateFromRepair は完了した修理の使用部品から請求書を作る。
// 1修理につき請求書は1枚（重複はAlreadyBilled、DBのuniqueIndexでも保証）。
func (u *BillUsecase) GenerateFromRepair(ctx context.Context, actorID int64, in GenerateRepairBillInput) (BillOutput, error) {
	if actorID <= 0 {
		return BillOutput{}, errUnauthorized("unauthorized")
	}
	if in.RepairJobID <= 0 {
		return BillOutput{}, errInvalidArgument("invalid repair_job_id")
	}
	if in.TaxRate != nil && in.TaxRate.IsNegative() {
		return BillOutput{}, errInvalidArgument("tax_rate must be >= 0")
	}

	var out BillOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		job, err := r.RepairJobs().FindByID(ctx, in.RepairJobID)
		if err == repo.ErrNotFound {
			return errNotFound("repair not found")
		}
		if err != nil {
			return errInternal("db error")
		}
		if job.Status != model.RepairStatusCompleted {
			return errInvalidArgument("repair is not completed")
		}

		_, billed, err := r.Bills().FindByRepairJobID(ctx, in.RepairJobID)
		if err != nil {
			return errInternal("db error")
		}
		if billed {
			return errAlreadyBilled("bill already exists for this repair")
		}

		usages, err := r.RepairParts().ListByRepairJobID(ctx, in.RepairJobID)
		if err != nil {
			return errInternal("db error")
		}
		if len(usages) == 0 {
			return errEmptyBill("no parts recorded for this repair")
		}

		taxRate, err := resolveTaxRate(ctx, r, in.TaxRate)
		if err != nil {
			return err
		}

		//小計は使用時点のスナップショット合計。在庫はここでは触らない。
		subtotal := decimal.Zero
		items := make([]model.BillItem, 0, len(usages))
		for _, usage := range usages {
			mode := usage.PricingMode
			items = append(items, model.BillItem{
				ItemType:    model.ItemTypePart,
				ItemID:      usage.PartID,
				Quantity:    usage.QuantityUsed,
				UnitPrice:   usage.UnitPrice,
				TotalPrice:  usage.TotalPrice,
				PricingMode: &mode,
			})
			subtotal = subtotal.Add(usage.TotalPrice)
		}

		tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)

		now := time.Now()
		repairID := in.RepairJobID
		customerID := job.CustomerID
		bill := model.Bill{
			BillNumber:    newBillNumber(now),
			RepairJobID:   &repairID,
			CustomerID:    &customerID,
			Subtotal:      subtotal,
			TaxRate:       taxRate,
			TaxAmount:     tax,
			TotalAmount:   subtotal.Add(tax),
			PaymentStatus: model.PaymentStatusPending,
			CreatedByID:   actorID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		billID, err := r.Bills().Create(ctx, bill)
		if err != nil {
			//同時に同じ修理へ請求した場合はuniqueIndexで弾かれる
			return errConflict("bill creation conflicted")
		}

		if err := r.BillItems().CreateBulk(ctx, billID, items); err != nil {
			return errInternal("db error")
		}

		bill.ID = billID
		out = toBillOutput(bill, items)
		return nil
	})

	if err != nil {
		return BillOutput{}, err
	}
	return out, nil
}

type AccessoryBillLine struct {
	AccessoryID int64
	Quantity    int64
}

type GenerateAccessoryBillInput struct {
	CustomerID *int64
	Lines      []AccessoryBillLine
	TaxRate    *decimal.Decimal
}

// GenerateFromAccessoryCart はカート全体を先に検証してから書き込む。
// 後半の行で在庫不足が見つかっても前半の行が書かれたままにならない。
func (u *BillUsecase) GenerateFromAccessoryCart(ctx context.Context, actorID int64, in GenerateAccessoryBillInput) (BillOutput, error) {
	if actorID <= 0 {
		return BillOutput{}, errUnauthorized("unauthorized")
	}
	if len(in.Lines) == 0 {
		return BillOutput{}, errEmptyBill("no lines")
	}
	for _, line := range in.Lines {
		if line.AccessoryID <= 0 {
			return BillOutput{}, errInvalidArgument("invalid accessory_id")
		}
		if line.Quantity <= 0 {
			return BillOutput{}, errInvalidArgument("quantity must be > 0")
		}
	}
	if in.TaxRate != nil && in.TaxRate.IsNegative() {
		return BillOutput{}, errInvalidArgument("tax_rate must be >= 0")
	}

	var out BillOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.CustomerID != nil {
			if _, err := r.Customers().FindByID(ctx, *in.CustomerID); err != nil {
				if err == repo.ErrNotFound {
					return errNotFound("customer not found")
				}
				return errInternal("db error")
			}
		}

		//同じアクセサリが複数行ある場合は合算して足りるか確認する
		needed := make(map[int64]int64)
		for _, line := range in.Lines {
			needed[line.AccessoryID] += line.Quantity
		}

		//事前チェック（ここまで書き込みなし）
		accessories := make(map[int64]model.Accessory)
		for accessoryID, qty := range needed {
			a, err := r.Accessories().FindByID(ctx, accessoryID)
			if err == repo.ErrNotFound {
				return errNotFound("accessory not found")
			}
			if err != nil {
				return errInternal("db error")
			}
			if a.Quantity < qty {
				return errInsufficientStock("insufficient stock")
			}
			accessories[accessoryID] = a
		}

		taxRate, err := resolveTaxRate(ctx, r, in.TaxRate)
		if err != nil {
			return err
		}

		//小計は定価から計算（店頭販売と違い行単価の上書きはしない）
		subtotal := decimal.Zero
		items := make([]model.BillItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			a := accessories[line.AccessoryID]
			lineTotal := a.UnitPrice().Mul(decimal.NewFromInt(line.Quantity)).Round(2)
			items = append(items, model.BillItem{
				ItemType:   model.ItemTypeAccessory,
				ItemID:     line.AccessoryID,
				Quantity:   line.Quantity,
				UnitPrice:  a.UnitPrice(),
				TotalPrice: lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)

		now := time.Now()
		bill := model.Bill{
			BillNumber:    newBillNumber(now),
			CustomerID:    in.CustomerID,
			Subtotal:      subtotal,
			TaxRate:       taxRate,
			TaxAmount:     tax,
			TotalAmount:   subtotal.Add(tax),
			PaymentStatus: model.PaymentStatusPending,
			CreatedByID:   actorID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		billID, err := r.Bills().Create(ctx, bill)
		if err != nil {
			return errInternal("db error")
		}
		if err := r.BillItems().CreateBulk(ctx, billID, items); err != nil {
			return errInternal("db error")
		}

		//行ごとに在庫減算と販売記録。事前チェック後に他の販売が割り込んだらConflict。
		for _, item := range items {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, model.ItemTypeAccessory, item.ItemID, item.Quantity)
			if err != nil {
				return errInternal("db error")
			}
			if !ok {
				return errConflict("stock changed concurrently")
			}

			if _, err := r.AccessorySales().Create(ctx, model.AccessorySale{
				AccessoryID: item.ItemID,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TotalPrice:  item.TotalPrice,
				SoldByID:    actorID,
				CreatedAt:   now,
			}); err != nil {
				return errInternal("db error")
			}
		}

		bill.ID = billID
		out = toBillOutput(bill, items)
		return nil
	})

	if err != nil {
		return BillOutput{}, err
	}
	return out, nil
}

func (u *BillUsecase) Get(ctx context.Context, billID int64) (BillOutput, error) {
	if billID <= 0 {
		return BillOutput{}, errInvalidArgument("invalid id")
	}

	bill, err := u.billRepo.FindByID(ctx, billID)
	if err == repo.ErrNotFound {
		return BillOutput{}, errNotFound("bill not found")
	}
	if err != nil {
		return BillOutput{}, errInternal("db error")
	}

	items, err := u.billItemRepo.ListByBillID(ctx, billID)
	if err != nil {
		return BillOutput{}, errInternal("db error")
	}

	return toBillOutput(bill, items), nil
}

type BillListOutput struct {
	Items []model.Bill `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *BillUsecase) List(ctx context.Context, q repo.BillListQuery) (BillListOutput, error) {
	if q.Page < 1 {
		return BillListOutput{}, errInvalidArgument("invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return BillListOutput{}, errInvalidArgument("invalid limit")
	}
	if q.PaymentStatus != "" && !model.PaymentStatus(q.PaymentStatus).Valid() {
		return BillListOutput{}, errInvalidArgument("invalid payment_status")
	}

	items, total, err := u.billRepo.List(ctx, q)
	if err != nil {
		return BillListOutput{}, errInternal("db error")
	}
	return BillListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// UpdatePaymentStatus は支払い状態のメタデータ更新。在庫には影響しない。
func (u *BillUsecase) UpdatePaymentStatus(ctx context.Context, billID int64, status model.PaymentStatus, method string) error {
	if billID <= 0 {
		return errInvalidArgument("invalid id")
	}
	if !status.Valid() {
		return errInvalidArgument("invalid payment_status")
	}

	err := u.billRepo.UpdatePayment(ctx, billID, status, strings.TrimSpace(method))
	if err == repo.ErrNotFound {
		return errNotFound("bill not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}

// Delete は請求書と明細を消す。
// 在庫・販売記録・使用記録は戻さない。請求削除は会計上の訂正であり
// 在庫の取り消しではない（仕様どおりの挙動）。
func (u *BillUsecase) Delete(ctx context.Context, actorID int64, billID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if billID <= 0 {
		return errInvalidArgument("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Bills().FindByID(ctx, billID); err != nil {
			if err == repo.ErrNotFound {
				return errNotFound("bill not found")
			}
			return errInternal("db error")
		}

		if err := r.BillItems().DeleteByBillID(ctx, billID); err != nil {
			return errInternal("db error")
		}
		if err := r.Bills().Delete(ctx, billID); err != nil {
			return errInternal("db error")
		}
		return nil
	})
}

// 請求書番号は日付と衝突しにくいサフィックスの組み合わせ。
// リトライ時も再利用せず毎回新しく作る。
func newBillNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "B-" + now.Format("20060102") + "-" + suffix
}

// 税率はリクエスト指定が無ければ設定値、設定も無ければ0。
func resolveTaxRate(ctx context.Context, r repo.TxRepos, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}

	raw, err := r.Settings().Get(ctx, model.SettingKeyTaxRate)
	if err == repo.ErrNotFound {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, errInternal("db error")
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, errInternal("invalid tax_rate setting")
	}
	return rate, nil
}

func toBillOutput(bill model.Bill, items []model.BillItem) BillOutput {
	outItems := make([]BillItemOutput, 0, len(items))
	for _, item := range items {
		outItems = append(outItems, BillItemOutput{
			ID:          item.ID,
			ItemType:    item.ItemType,
			ItemID:      item.ItemID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			PricingMode: item.PricingMode,
		})
	}

	return BillOutput{
		ID:            bill.ID,
		BillNumber:    bill.BillNumber,
		RepairJobID:   bill.RepairJobID,
		CustomerID:    bill.CustomerID,
		Subtotal:      bill.Subtotal,
		TaxRate:       bill.TaxRate,
		TaxAmount:     bill.TaxAmount,
		TotalAmount:   bill.TotalAmount,
		PaymentStatus: bill.PaymentStatus,
		PaymentMethod: bill.PaymentMethod,
		CreatedAt:     bill.CreatedAt,
		Items:         outItems,
	}
}
