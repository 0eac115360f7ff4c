package usecase

import (
	"context"
	"strings"
	"time"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"
)

type StorageBoxUsecase struct {
	boxRepo repo.StorageBoxRepository
}

func NewStorageBoxUsecase(boxRepo repo.StorageBoxRepository) *StorageBoxUsecase {
	return &StorageBoxUsecase{boxRepo: boxRepo}
}

func (u *StorageBoxUsecase) List(ctx context.Context) ([]model.StorageBox, error) {
	items, err := u.boxRepo.List(ctx)
	if err != nil {
		return []model.StorageBox{}, errInternal("db error")
	}
	return items, nil
}

func (u *StorageBoxUsecase) Get(ctx context.Context, boxID int64) (model.StorageBox, error) {
	if boxID <= 0 {
		return model.StorageBox{}, errInvalidArgument("invalid id")
	}

	b, err := u.boxRepo.FindByID(ctx, boxID)
	if err == repo.ErrNotFound {
		return model.StorageBox{}, errNotFound("storage box not found")
	}
	if err != nil {
		return model.StorageBox{}, errInternal("db error")
	}
	return b, nil
}

type StorageBoxInput struct {
	Code     string
	Location string
}

func (u *StorageBoxUsecase) Create(ctx context.Context, actorID int64, in StorageBoxInput) (model.StorageBox, error) {
	if actorID <= 0 {
		return model.StorageBox{}, errUnauthorized("unauthorized")
	}
	if strings.TrimSpace(in.Code) == "" {
		return model.StorageBox{}, errInvalidArgument("code required")
	}

	now := time.Now()
	b, err := u.boxRepo.Create(ctx, model.StorageBox{
		Code:      strings.TrimSpace(in.Code),
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		//codeはuniqueIndex
		return model.StorageBox{}, errConflict("code already used")
	}
	return b, nil
}

func (u *StorageBoxUsecase) Update(ctx context.Context, actorID int64, boxID int64, in StorageBoxInput) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if boxID <= 0 {
		return errInvalidArgument("invalid id")
	}
	if strings.TrimSpace(in.Code) == "" {
		return errInvalidArgument("code required")
	}

	err := u.boxRepo.Update(ctx, model.StorageBox{
		ID:       boxID,
		Code:     strings.TrimSpace(in.Code),
		Location: strings.TrimSpace(in.Location),
	})
	if err == repo.ErrNotFound {
		return errNotFound("storage box not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}

func (u *StorageBoxUsecase) Delete(ctx context.Context, actorID int64, boxID int64) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if boxID <= 0 {
		return errInvalidArgument("invalid id")
	}

	err := u.boxRepo.Delete(ctx, boxID)
	if err == repo.ErrNotFound {
		return errNotFound("storage box not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}
