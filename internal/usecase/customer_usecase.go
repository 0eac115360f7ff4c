package usecase

import (
	"context"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"
)

type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
}

func NewCustomerUsecase(customerRepo repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo}
}

type CustomerListOutput struct {
	Items []model.Customer `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *CustomerUsecase) List(ctx context.Context, q repo.CustomerListQuery) (CustomerListOutput, error) {
	if q.Page < 1 {
		return CustomerListOutput{}, errInvalidArgument("invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return CustomerListOutput{}, errInvalidArgument("invalid limit")
	}

	items, total, err := u.customerRepo.List(ctx, q)
	if err != nil {
		return CustomerListOutput{}, errInternal("db error")
	}
	return CustomerListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, errInvalidArgument("invalid id")
	}

	c, err := u.customerRepo.FindByID(ctx, customerID)
	if err == repo.ErrNotFound {
		return model.Customer{}, errNotFound("customer not found")
	}
	if err != nil {
		return model.Customer{}, errInternal("db error")
	}
	return c, nil
}

type CustomerInput struct {
	Name  string
	Phone string
	Email string
	Note  string
}

func (u *CustomerUsecase) Create(ctx context.Context, actorID int64, in CustomerInput) (model.Customer, error) {
	if actorID <= 0 {
		return model.Customer{}, errUnauthorized("unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Customer{}, errInvalidArgument("name required")
	}

	now := time.Now()
	c, err := u.customerRepo.Create(ctx, model.Customer{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Customer{}, errInternal("db error")
	}
	return c, nil
}

func (u *CustomerUsecase) Update(ctx context.Context, actorID int64, customerID int64, in CustomerInput) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if customerID <= 0 {
		return errInvalidArgument("invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errInvalidArgument("name required")
	}

	err := u.customerRepo.Update(ctx, model.Customer{
		ID:    customerID,
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
		Note:  in.Note,
	})
	if err == repo.ErrNotFound {
		return errNotFound("customer not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}

func (u *CustomerUsecase) Delete(ctx context.Context, actorID int64, customerID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if customerID <= 0 {
		return errInvalidArgument("invalid id")
	}

	err := u.customerRepo.Delete(ctx, customerID)
	if err == repo.ErrNotFound {
		return errNotFound("customer not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}
