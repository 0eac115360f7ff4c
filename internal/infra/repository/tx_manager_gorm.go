package repository

import (
	"context"

	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	parts       repo.PartRepository
	accessories repo.AccessoryRepository
	inventory   repo.InventoryRepository
	repairJobs  repo.RepairJobRepository
	repairParts repo.RepairPartRepository
	sales       repo.AccessorySaleRepository
	bills       repo.BillRepository
	billItems   repo.BillItemRepository
	customers   repo.CustomerRepository
	settings    repo.SettingRepository
}

func (r *txReposGorm) Parts() repo.PartRepository { return r.parts }
func (r *txReposGorm) Accessories() repo.AccessoryRepository { return r.accessories }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }
func (r *txReposGorm) RepairJobs() repo.RepairJobRepository { return r.repairJobs }
func (r *txReposGorm) RepairParts() repo.RepairPartRepository { return r.repairParts }
func (r *txReposGorm) AccessorySales() repo.AccessorySaleRepository { return r.sales }
func (r *txReposGorm) Bills() repo.BillRepository { return r.bills }
func (r *txReposGorm) BillItems() repo.BillItemRepository { return r.billItems }
func (r *txReposGorm) Customers() repo.CustomerRepository { return r.customers }
func (r *txReposGorm) Settings() repo.SettingRepository { return r.settings }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			parts:       NewPartGormRepository(tx),
			accessories: NewAccessoryGormRepository(tx),
			inventory:   NewInventoryGormRepository(tx),
			repairJobs:  NewRepairJobGormRepository(tx),
			repairParts: NewRepairPartGormRepository(tx),
			sales:       NewAccessorySaleGormRepository(tx),
			bills:       NewBillGormRepository(tx),
			billItems:   NewBillItemGormRepository(tx),
			customers:   NewCustomerGormRepository(tx),
			settings:    NewSettingGormRepository(tx),
		}
		return fn(r)
	})
}
