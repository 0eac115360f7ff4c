package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

// 在庫台帳。部品・アクセサリの数量だけを触る。
// 減算は「足りるときだけ」の条件付きUPDATEで、確認と減算が1文になる。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算（足りなければ false）
	DecreaseStockIfEnough(ctx context.Context, item model.ItemType, itemID int64, qty int64) (bool, error)

	// 在庫戻し（使用取り消しなど）
	IncreaseStock(ctx context.Context, item model.ItemType, itemID int64, qty int64) error

	// 在庫の現在値を設定
	SetStock(ctx context.Context, item model.ItemType, itemID int64, newQty int64) error

	// 減算（0未満にはしない）
	SubtractStockFloored(ctx context.Context, item model.ItemType, itemID int64, qty int64) error

	// 現在数量の取得
	CurrentQuantity(ctx context.Context, item model.ItemType, itemID int64) (int64, error)

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error
}
