// Package logger предоставляет обертку над zap с настройкой через переменные окружения.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Zap struct {
	*zap.Logger
}

// New создает логгер для указанного окружения (dev - человекочитаемый вывод,
// prod - JSON) и уровня логирования.
func New(env, level string) (*Zap, error) {
	var cfg zap.Config
	if env == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Zap{Logger: log}, nil
}

func (z *Zap) Sync() {
	_ = z.Logger.Sync()
}
