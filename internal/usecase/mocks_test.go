package usecase_test

import (
	"context"
	"testing"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"
	"repairshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type PartRepoMock struct{ mock.Mock }

func (m *PartRepoMock) FindByID(ctx context.Context, partID int64) (model.Part, error) {
	args := m.Called(ctx, partID)
	p, _ := args.Get(0).(model.Part)
	return p, args.Error(1)
}

func (m *PartRepoMock) List(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Part)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PartRepoMock) ListLowStock(ctx context.Context) ([]model.Part, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Part)
	return items, args.Error(1)
}

func (m *PartRepoMock) Create(ctx context.Context, p model.Part) (model.Part, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Part)
	return created, args.Error(1)
}

func (m *PartRepoMock) Update(ctx context.Context, p model.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PartRepoMock) SoftDelete(ctx context.Context, partID int64) error {
	args := m.Called(ctx, partID)
	return args.Error(0)
}

type AccessoryRepoMock struct{ mock.Mock }

func (m *AccessoryRepoMock) FindByID(ctx context.Context, accessoryID int64) (model.Accessory, error) {
	args := m.Called(ctx, accessoryID)
	a, _ := args.Get(0).(model.Accessory)
	return a, args.Error(1)
}

func (m *AccessoryRepoMock) List(ctx context.Context, q repo.AccessoryListQuery) ([]model.Accessory, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Accessory)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *AccessoryRepoMock) ListLowStock(ctx context.Context) ([]model.Accessory, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Accessory)
	return items, args.Error(1)
}

func (m *AccessoryRepoMock) Create(ctx context.Context, a model.Accessory) (model.Accessory, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.Accessory)
	return created, args.Error(1)
}

func (m *AccessoryRepoMock) Update(ctx context.Context, a model.Accessory) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AccessoryRepoMock) SoftDelete(ctx context.Context, accessoryID int64) error {
	args := m.Called(ctx, accessoryID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, item model.ItemType, itemID int64, qty int64) (bool, error) {
	args := m.Called(ctx, item, itemID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, item model.ItemType, itemID int64, qty int64) error {
	args := m.Called(ctx, item, itemID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) SetStock(ctx context.Context, item model.ItemType, itemID int64, newQty int64) error {
	args := m.Called(ctx, item, itemID, newQty)
	return args.Error(0)
}

func (m *InventoryRepoMock) SubtractStockFloored(ctx context.Context, item model.ItemType, itemID int64, qty int64) error {
	args := m.Called(ctx, item, itemID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CurrentQuantity(ctx context.Context, item model.ItemType, itemID int64) (int64, error) {
	args := m.Called(ctx, item, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

type RepairJobRepoMock struct{ mock.Mock }

func (m *RepairJobRepoMock) FindByID(ctx context.Context, repairID int64) (model.RepairJob, error) {
	args := m.Called(ctx, repairID)
	job, _ := args.Get(0).(model.RepairJob)
	return job, args.Error(1)
}

func (m *RepairJobRepoMock) List(ctx context.Context, q repo.RepairListQuery) ([]model.RepairJob, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.RepairJob)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *RepairJobRepoMock) Create(ctx context.Context, job model.RepairJob) (int64, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepairJobRepoMock) UpdateStatus(ctx context.Context, repairID int64, status model.RepairStatus) error {
	args := m.Called(ctx, repairID, status)
	return args.Error(0)
}

func (m *RepairJobRepoMock) Delete(ctx context.Context, repairID int64) error {
	args := m.Called(ctx, repairID)
	return args.Error(0)
}

type RepairPartRepoMock struct{ mock.Mock }

func (m *RepairPartRepoMock) Create(ctx context.Context, usage model.RepairPartUsage) (int64, error) {
	args := m.Called(ctx, usage)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepairPartRepoMock) ListByRepairJobID(ctx context.Context, repairID int64) ([]model.RepairPartUsage, error) {
	args := m.Called(ctx, repairID)
	items, _ := args.Get(0).([]model.RepairPartUsage)
	return items, args.Error(1)
}

func (m *RepairPartRepoMock) FindLatestByRepairAndPart(ctx context.Context, repairID int64, partID int64) (model.RepairPartUsage, error) {
	args := m.Called(ctx, repairID, partID)
	usage, _ := args.Get(0).(model.RepairPartUsage)
	return usage, args.Error(1)
}

func (m *RepairPartRepoMock) Delete(ctx context.Context, usageID int64) error {
	args := m.Called(ctx, usageID)
	return args.Error(0)
}

func (m *RepairPartRepoMock) DeleteByRepairJobID(ctx context.Context, repairID int64) error {
	args := m.Called(ctx, repairID)
	return args.Error(0)
}

func (m *RepairPartRepoMock) CountByPartID(ctx context.Context, partID int64) (int64, error) {
	args := m.Called(ctx, partID)
	return args.Get(0).(int64), args.Error(1)
}

type AccessorySaleRepoMock struct{ mock.Mock }

func (m *AccessorySaleRepoMock) Create(ctx context.Context, sale model.AccessorySale) (int64, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccessorySaleRepoMock) List(ctx context.Context, q repo.SaleListQuery) ([]model.AccessorySale, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.AccessorySale)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *AccessorySaleRepoMock) CountByAccessoryID(ctx context.Context, accessoryID int64) (int64, error) {
	args := m.Called(ctx, accessoryID)
	return args.Get(0).(int64), args.Error(1)
}

type BillRepoMock struct{ mock.Mock }

func (m *BillRepoMock) FindByID(ctx context.Context, billID int64) (model.Bill, error) {
	args := m.Called(ctx, billID)
	bill, _ := args.Get(0).(model.Bill)
	return bill, args.Error(1)
}

func (m *BillRepoMock) FindByRepairJobID(ctx context.Context, repairID int64) (model.Bill, bool, error) {
	args := m.Called(ctx, repairID)
	bill, _ := args.Get(0).(model.Bill)
	return bill, args.Bool(1), args.Error(2)
}

func (m *BillRepoMock) List(ctx context.Context, q repo.BillListQuery) ([]model.Bill, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Bill)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *BillRepoMock) Create(ctx context.Context, bill model.Bill) (int64, error) {
	args := m.Called(ctx, bill)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BillRepoMock) UpdatePayment(ctx context.Context, billID int64, status model.PaymentStatus, method string) error {
	args := m.Called(ctx, billID, status, method)
	return args.Error(0)
}

func (m *BillRepoMock) Delete(ctx context.Context, billID int64) error {
	args := m.Called(ctx, billID)
	return args.Error(0)
}

type BillItemRepoMock struct{ mock.Mock }

func (m *BillItemRepoMock) CreateBulk(ctx context.Context, billID int64, items []model.BillItem) error {
	args := m.Called(ctx, billID, items)
	return args.Error(0)
}

func (m *BillItemRepoMock) ListByBillID(ctx context.Context, billID int64) ([]model.BillItem, error) {
	args := m.Called(ctx, billID)
	items, _ := args.Get(0).([]model.BillItem)
	return items, args.Error(1)
}

func (m *BillItemRepoMock) DeleteByBillID(ctx context.Context, billID int64) error {
	args := m.Called(ctx, billID)
	return args.Error(0)
}

func (m *BillItemRepoMock) CountByItem(ctx context.Context, item model.ItemType, itemID int64) (int64, error) {
	args := m.Called(ctx, item, itemID)
	return args.Get(0).(int64), args.Error(1)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) List(ctx context.Context, q repo.CustomerListQuery) ([]model.Customer, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Customer)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) Delete(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type SettingRepoMock struct{ mock.Mock }

func (m *SettingRepoMock) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingRepoMock) Upsert(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// =====================
// Txのテストダブル
// =====================

// txReposStub はモック一式をTxReposとして見せる
type txReposStub struct {
	parts       *PartRepoMock
	accessories *AccessoryRepoMock
	inventory   *InventoryRepoMock
	repairJobs  *RepairJobRepoMock
	repairParts *RepairPartRepoMock
	sales       *AccessorySaleRepoMock
	bills       *BillRepoMock
	billItems   *BillItemRepoMock
	customers   *CustomerRepoMock
	settings    *SettingRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		parts:       new(PartRepoMock),
		accessories: new(AccessoryRepoMock),
		inventory:   new(InventoryRepoMock),
		repairJobs:  new(RepairJobRepoMock),
		repairParts: new(RepairPartRepoMock),
		sales:       new(AccessorySaleRepoMock),
		bills:       new(BillRepoMock),
		billItems:   new(BillItemRepoMock),
		customers:   new(CustomerRepoMock),
		settings:    new(SettingRepoMock),
	}
}

func (s *txReposStub) Parts() repo.PartRepository { return s.parts }
func (s *txReposStub) Accessories() repo.AccessoryRepository { return s.accessories }
func (s *txReposStub) Inventory() repo.InventoryRepository { return s.inventory }
func (s *txReposStub) RepairJobs() repo.RepairJobRepository { return s.repairJobs }
func (s *txReposStub) RepairParts() repo.RepairPartRepository { return s.repairParts }
func (s *txReposStub) AccessorySales() repo.AccessorySaleRepository { return s.sales }
func (s *txReposStub) Bills() repo.BillRepository { return s.bills }
func (s *txReposStub) BillItems() repo.BillItemRepository { return s.billItems }
func (s *txReposStub) Customers() repo.CustomerRepository { return s.customers }
func (s *txReposStub) Settings() repo.SettingRepository { return s.settings }

// txManagerStub はトランザクションを張らずfnを直接実行する
type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

// =====================
// assertヘルパー
// =====================

func assertAppCode(t *testing.T, err error, code usecase.ErrorCode) {
	t.Helper()
	ae, ok := usecase.AsAppError(err)
	if assert.True(t, ok, "expected AppError, got %v", err) {
		assert.Equal(t, code, ae.Code)
	}
}
