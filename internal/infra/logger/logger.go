package logger

import "go.uber.org/zap"

// New は環境に応じたzapロガーを返す。
func New(goEnv string) (*zap.Logger, error) {
	if goEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
