package usecase_test

import (
	"context"
	"testing"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"
	"repairshop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRepairUC(tx *txManagerStub) *usecase.RepairUsecase {
	return usecase.NewRepairUsecase(tx, new(RepairJobRepoMock), new(RepairPartRepoMock), new(CustomerRepoMock))
}

func TestRepairUsecase_AddPart_SnapshotPrice(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	part := model.Part{
		ID:           7,
		Name:         "gasket",
		RepairPrice:  decimal.RequireFromString("50.00"),
		SealingPrice: decimal.RequireFromString("35.00"),
		Quantity:     10,
	}

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusInProgress}, nil)
	tx.repos.parts.On("FindByID", mock.Anything, int64(7)).Return(part, nil)
	tx.repos.inventory.On("DecreaseStockIfEnough", mock.Anything, model.ItemTypePart, int64(7), int64(2)).
		Return(true, nil)
	tx.repos.repairParts.On("Create", mock.Anything, mock.MatchedBy(func(u model.RepairPartUsage) bool {
		return u.RepairJobID == 3 &&
			u.PartID == 7 &&
			u.QuantityUsed == 2 &&
			u.PricingMode == model.PricingModeRepair &&
			u.UnitPrice.Equal(decimal.RequireFromString("50.00")) &&
			u.TotalPrice.Equal(decimal.RequireFromString("100.00"))
	})).Return(int64(11), nil)

	out, err := uc.AddPart(context.Background(), 1, 3, usecase.AddPartInput{
		PartID:      7,
		Quantity:    2,
		PricingMode: model.PricingModeRepair,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), out.ID)
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("100.00")))
	tx.repos.repairParts.AssertExpectations(t)
}

func TestRepairUsecase_AddPart_SealMode(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	part := model.Part{
		ID:           7,
		RepairPrice:  decimal.RequireFromString("50.00"),
		SealingPrice: decimal.RequireFromString("35.00"),
	}

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusPending}, nil)
	tx.repos.parts.On("FindByID", mock.Anything, int64(7)).Return(part, nil)
	tx.repos.inventory.On("DecreaseStockIfEnough", mock.Anything, model.ItemTypePart, int64(7), int64(1)).
		Return(true, nil)
	tx.repos.repairParts.On("Create", mock.Anything, mock.MatchedBy(func(u model.RepairPartUsage) bool {
		return u.UnitPrice.Equal(decimal.RequireFromString("35.00"))
	})).Return(int64(12), nil)

	out, err := uc.AddPart(context.Background(), 1, 3, usecase.AddPartInput{
		PartID:      7,
		Quantity:    1,
		PricingMode: model.PricingModeSeal,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.PricingModeSeal, out.PricingMode)
}

func TestRepairUsecase_AddPart_InsufficientStock(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusInProgress}, nil)
	tx.repos.parts.On("FindByID", mock.Anything, int64(7)).
		Return(model.Part{ID: 7, RepairPrice: decimal.NewFromInt(10)}, nil)
	tx.repos.inventory.On("DecreaseStockIfEnough", mock.Anything, model.ItemTypePart, int64(7), int64(5)).
		Return(false, nil)

	_, err := uc.AddPart(context.Background(), 1, 3, usecase.AddPartInput{
		PartID:      7,
		Quantity:    5,
		PricingMode: model.PricingModeRepair,
	})

	assertAppCode(t, err, usecase.CodeInsufficientStock)
	tx.repos.repairParts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRepairUsecase_AddPart_ClosedJob(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusCompleted}, nil)

	_, err := uc.AddPart(context.Background(), 1, 3, usecase.AddPartInput{
		PartID:      7,
		Quantity:    1,
		PricingMode: model.PricingModeRepair,
	})

	assertAppCode(t, err, usecase.CodeInvalidArgument)
}

func TestRepairUsecase_RemovePart_RestoresStock(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusInProgress}, nil)
	tx.repos.repairParts.On("FindLatestByRepairAndPart", mock.Anything, int64(3), int64(7)).
		Return(model.RepairPartUsage{ID: 11, RepairJobID: 3, PartID: 7, QuantityUsed: 2}, nil)
	tx.repos.inventory.On("IncreaseStock", mock.Anything, model.ItemTypePart, int64(7), int64(2)).
		Return(nil)
	tx.repos.repairParts.On("Delete", mock.Anything, int64(11)).Return(nil)

	err := uc.RemovePart(context.Background(), 1, 3, 7)

	assert.NoError(t, err)
	tx.repos.inventory.AssertExpectations(t)
	tx.repos.repairParts.AssertExpectations(t)
}

func TestRepairUsecase_RemovePart_UsageNotFound(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusInProgress}, nil)
	tx.repos.repairParts.On("FindLatestByRepairAndPart", mock.Anything, int64(3), int64(7)).
		Return(model.RepairPartUsage{}, repo.ErrNotFound)

	err := uc.RemovePart(context.Background(), 1, 3, 7)

	assertAppCode(t, err, usecase.CodeNotFound)
	tx.repos.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRepairUsecase_Delete_AlreadyBilled(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusCompleted}, nil)
	tx.repos.bills.On("FindByRepairJobID", mock.Anything, int64(3)).
		Return(model.Bill{ID: 9}, true, nil)

	err := uc.Delete(context.Background(), 1, 3)

	assertAppCode(t, err, usecase.CodeConflict)
	tx.repos.repairJobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRepairUsecase_Delete_RestoresAllUsages(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusInProgress}, nil)
	tx.repos.bills.On("FindByRepairJobID", mock.Anything, int64(3)).
		Return(model.Bill{}, false, nil)
	tx.repos.repairParts.On("ListByRepairJobID", mock.Anything, int64(3)).
		Return([]model.RepairPartUsage{
			{ID: 11, PartID: 7, QuantityUsed: 2},
			{ID: 12, PartID: 8, QuantityUsed: 1},
		}, nil)
	tx.repos.inventory.On("IncreaseStock", mock.Anything, model.ItemTypePart, int64(7), int64(2)).Return(nil)
	tx.repos.inventory.On("IncreaseStock", mock.Anything, model.ItemTypePart, int64(8), int64(1)).Return(nil)
	tx.repos.repairParts.On("DeleteByRepairJobID", mock.Anything, int64(3)).Return(nil)
	tx.repos.repairJobs.On("Delete", mock.Anything, int64(3)).Return(nil)

	err := uc.Delete(context.Background(), 1, 3)

	assert.NoError(t, err)
	tx.repos.inventory.AssertExpectations(t)
	tx.repos.repairJobs.AssertExpectations(t)
}

func TestRepairUsecase_UpdateStatus_InvalidTransition(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusPending}, nil)

	//pendingからcompletedへは直接行けない
	err := uc.UpdateStatus(context.Background(), 1, model.RoleStaff, 3, model.RepairStatusCompleted)
	assertAppCode(t, err, usecase.CodeInvalidArgument)
}

func TestRepairUsecase_UpdateStatus_ReopenRequiresAdmin(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusCompleted}, nil)

	err := uc.UpdateStatus(context.Background(), 1, model.RoleStaff, 3, model.RepairStatusInProgress)
	assertAppCode(t, err, usecase.CodeInvalidArgument)
}

func TestRepairUsecase_UpdateStatus_ReopenBlockedWhenBilled(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newRepairUC(tx)

	tx.repos.repairJobs.On("FindByID", mock.Anything, int64(3)).
		Return(model.RepairJob{ID: 3, Status: model.RepairStatusCompleted}, nil)
	tx.repos.bills.On("FindByRepairJobID", mock.Anything, int64(3)).
		Return(model.Bill{ID: 9}, true, nil)

	err := uc.UpdateStatus(context.Background(), 1, model.RoleAdmin, 3, model.RepairStatusInProgress)
	assertAppCode(t, err, usecase.CodeConflict)
}

func TestRepairUsecase_Create_CustomerNotFound(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	customerRepo := new(CustomerRepoMock)
	uc := usecase.NewRepairUsecase(tx, new(RepairJobRepoMock), new(RepairPartRepoMock), customerRepo)

	customerRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.Create(context.Background(), 1, usecase.CreateRepairInput{
		CustomerID: 99,
		DeviceName: "watch",
	})

	assertAppCode(t, err, usecase.CodeNotFound)
}
