package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/pkg/config"
	"github.com/examhub-lk/examhub-api/pkg/logger"
)

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logr, nil
}
