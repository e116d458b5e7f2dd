package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/config"
)

// newLogger строит логгер по режиму сервера: JSON и уровень info в release,
// консольный вывод и debug в остальных режимах
func newLogger(server config.ServerConfig) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if server.IsRelease() {
		zapCfg = zap.NewProductionConfig()
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
