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

func newInventoryUC(tx *txManagerStub) *usecase.InventoryUsecase {
	return usecase.NewInventoryUsecase(tx, new(PartRepoMock), new(AccessoryRepoMock))
}

func TestInventoryUsecase_Adjust_Add(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newInventoryUC(tx)

	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypePart, int64(7)).
		Return(int64(3), nil).Once()
	tx.repos.inventory.On("IncreaseStock", mock.Anything, model.ItemTypePart, int64(7), int64(5)).
		Return(nil)
	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypePart, int64(7)).
		Return(int64(8), nil).Once()
	tx.repos.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(adj model.StockAdjustment) bool {
		return adj.Mode == model.AdjustModeAdd && adj.Delta == 5 && adj.ActorID == 1 && adj.Reason == "restock"
	})).Return(nil)

	out, err := uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypePart,
		ItemID:   7,
		Mode:     model.AdjustModeAdd,
		Quantity: 5,
		Reason:   "restock",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(8), out.Quantity)
	assert.Equal(t, int64(5), out.Delta)
	tx.repos.inventory.AssertExpectations(t)
}

func TestInventoryUsecase_Adjust_SubtractFloored(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newInventoryUC(tx)

	//在庫3から10引いても0で止まる。履歴のdeltaは実際の-3。
	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypeAccessory, int64(5)).
		Return(int64(3), nil).Once()
	tx.repos.inventory.On("SubtractStockFloored", mock.Anything, model.ItemTypeAccessory, int64(5), int64(10)).
		Return(nil)
	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypeAccessory, int64(5)).
		Return(int64(0), nil).Once()
	tx.repos.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(adj model.StockAdjustment) bool {
		return adj.Delta == -3
	})).Return(nil)

	out, err := uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypeAccessory,
		ItemID:   5,
		Mode:     model.AdjustModeSubtract,
		Quantity: 10,
		Reason:   "damaged",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity)
	assert.Equal(t, int64(-3), out.Delta)
}

func TestInventoryUsecase_Adjust_Set(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newInventoryUC(tx)

	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypePart, int64(7)).
		Return(int64(3), nil).Once()
	tx.repos.inventory.On("SetStock", mock.Anything, model.ItemTypePart, int64(7), int64(0)).
		Return(nil)
	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypePart, int64(7)).
		Return(int64(0), nil).Once()
	tx.repos.inventory.On("CreateAdjustment", mock.Anything, mock.Anything).Return(nil)

	//setはquantity 0を受け付ける（棚卸しでゼロ合わせ）
	out, err := uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypePart,
		ItemID:   7,
		Mode:     model.AdjustModeSet,
		Quantity: 0,
		Reason:   "stocktake",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(-3), out.Delta)
}

func TestInventoryUsecase_Adjust_Validation(t *testing.T) {
	uc := newInventoryUC(&txManagerStub{repos: newTxReposStub()})

	//add/subtractはquantity 0を認めない
	_, err := uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypePart, ItemID: 7, Mode: model.AdjustModeAdd, Quantity: 0, Reason: "x",
	})
	assertAppCode(t, err, usecase.CodeInvalidArgument)

	_, err = uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypePart, ItemID: 7, Mode: model.AdjustMode("reset"), Quantity: 1, Reason: "x",
	})
	assertAppCode(t, err, usecase.CodeInvalidArgument)

	_, err = uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemType("bundle"), ItemID: 7, Mode: model.AdjustModeAdd, Quantity: 1, Reason: "x",
	})
	assertAppCode(t, err, usecase.CodeInvalidArgument)

	_, err = uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypePart, ItemID: 7, Mode: model.AdjustModeAdd, Quantity: 1, Reason: "  ",
	})
	assertAppCode(t, err, usecase.CodeInvalidArgument)
}

func TestInventoryUsecase_Adjust_ItemNotFound(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := newInventoryUC(tx)

	tx.repos.inventory.On("CurrentQuantity", mock.Anything, model.ItemTypePart, int64(99)).
		Return(int64(0), repo.ErrNotFound)

	_, err := uc.Adjust(context.Background(), 1, usecase.AdjustStockInput{
		ItemType: model.ItemTypePart, ItemID: 99, Mode: model.AdjustModeAdd, Quantity: 1, Reason: "restock",
	})
	assertAppCode(t, err, usecase.CodeNotFound)
}
