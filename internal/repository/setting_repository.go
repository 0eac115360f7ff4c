package repository

import "context"

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key string, value string) error
}
