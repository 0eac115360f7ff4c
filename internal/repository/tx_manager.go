package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Parts() PartRepository
	Accessories() AccessoryRepository
	Inventory() InventoryRepository
	RepairJobs() RepairJobRepository
	RepairParts() RepairPartRepository
	AccessorySales() AccessorySaleRepository
	Bills() BillRepository
	BillItems() BillItemRepository
	Customers() CustomerRepository
	Settings() SettingRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全部ロールバックする。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
