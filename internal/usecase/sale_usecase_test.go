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

func TestSaleUsecase_Sell_Success(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := usecase.NewSaleUsecase(tx, new(AccessorySaleRepoMock))

	tx.repos.accessories.On("FindByID", mock.Anything, int64(5)).
		Return(model.Accessory{ID: 5, Name: "strap", Price: decimal.RequireFromString("3.50"), Quantity: 10}, nil)
	tx.repos.inventory.On("DecreaseStockIfEnough", mock.Anything, model.ItemTypeAccessory, int64(5), int64(3)).
		Return(true, nil)
	tx.repos.sales.On("Create", mock.Anything, mock.MatchedBy(func(s model.AccessorySale) bool {
		return s.AccessoryID == 5 && s.Quantity == 3 && s.TotalPrice.Equal(decimal.RequireFromString("10.50"))
	})).Return(int64(1), nil)

	out, err := uc.Sell(context.Background(), 42, usecase.SellInput{
		AccessoryID: 5,
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("3.50"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("10.50")))
	assert.Equal(t, int64(42), out.SoldByID)
	tx.repos.inventory.AssertExpectations(t)
	tx.repos.sales.AssertExpectations(t)
}

func TestSaleUsecase_Sell_InsufficientStock(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := usecase.NewSaleUsecase(tx, new(AccessorySaleRepoMock))

	tx.repos.accessories.On("FindByID", mock.Anything, int64(5)).
		Return(model.Accessory{ID: 5, Quantity: 1}, nil)
	tx.repos.inventory.On("DecreaseStockIfEnough", mock.Anything, model.ItemTypeAccessory, int64(5), int64(3)).
		Return(false, nil)

	_, err := uc.Sell(context.Background(), 42, usecase.SellInput{
		AccessoryID: 5,
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("3.50"),
	})

	assertAppCode(t, err, usecase.CodeInsufficientStock)
	//販売記録は書かれない
	tx.repos.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaleUsecase_Sell_AccessoryNotFound(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := usecase.NewSaleUsecase(tx, new(AccessorySaleRepoMock))

	tx.repos.accessories.On("FindByID", mock.Anything, int64(99)).
		Return(model.Accessory{}, repo.ErrNotFound)

	_, err := uc.Sell(context.Background(), 42, usecase.SellInput{
		AccessoryID: 99,
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString("3.50"),
	})

	assertAppCode(t, err, usecase.CodeNotFound)
}

func TestSaleUsecase_Sell_InvalidInput(t *testing.T) {
	tx := &txManagerStub{repos: newTxReposStub()}
	uc := usecase.NewSaleUsecase(tx, new(AccessorySaleRepoMock))

	_, err := uc.Sell(context.Background(), 42, usecase.SellInput{AccessoryID: 5, Quantity: 0, UnitPrice: decimal.NewFromInt(1)})
	assertAppCode(t, err, usecase.CodeInvalidArgument)

	_, err = uc.Sell(context.Background(), 42, usecase.SellInput{AccessoryID: 5, Quantity: 1, UnitPrice: decimal.Zero})
	assertAppCode(t, err, usecase.CodeInvalidArgument)

	_, err = uc.Sell(context.Background(), 0, usecase.SellInput{AccessoryID: 5, Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	assertAppCode(t, err, usecase.CodeUnauthorized)
}

func TestSaleUsecase_List_InvalidPage(t *testing.T) {
	uc := usecase.NewSaleUsecase(&txManagerStub{repos: newTxReposStub()}, new(AccessorySaleRepoMock))

	_, err := uc.List(context.Background(), repo.SaleListQuery{Page: 0, Limit: 20})
	assertAppCode(t, err, usecase.CodeInvalidArgument)
}
