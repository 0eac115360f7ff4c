package usecase

import (
	"context"
	"strings"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"github.com/shopspring/decimal"
)

type SettingUsecase struct {
	settingRepo repo.SettingRepository
}

func NewSettingUsecase(settingRepo repo.SettingRepository) *SettingUsecase {
	return &SettingUsecase{settingRepo: settingRepo}
}

type SettingOutput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (u *SettingUsecase) Get(ctx context.Context, key string) (SettingOutput, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return SettingOutput{}, errInvalidArgument("key required")
	}

	v, err := u.settingRepo.Get(ctx, key)
	if err == repo.ErrNotFound {
		return SettingOutput{}, errNotFound("setting not found")
	}
	if err != nil {
		return SettingOutput{}, errInternal("db error")
	}
	return SettingOutput{Key: key, Value: v}, nil
}

func (u *SettingUsecase) Put(ctx context.Context, actorID int64, key string, value string) error {
	if actorID <= 0 {
		return errUnauthorized("unauthorized")
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return errInvalidArgument("key required")
	}
	if value == "" {
		return errInvalidArgument("value required")
	}

	//税率は数値で0以上だけ受け付ける
	if key == model.SettingKeyTaxRate {
		rate, err := decimal.NewFromString(value)
		if err != nil || rate.IsNegative() {
			return errInvalidArgument("tax_rate must be a number >= 0")
		}
	}

	if err := u.settingRepo.Upsert(ctx, key, value); err != nil {
		return errInternal("db error")
	}
	return nil
}
