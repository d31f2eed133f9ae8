package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/tovahealth/careshift/internal/config"
	"github.com/tovahealth/careshift/pkg/core/coverage"
	"github.com/tovahealth/careshift/pkg/core/services"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Deps   services.Deps
	Window coverage.Window
	Policy coverage.GapPolicy
	Logger *zap.Logger
	Ctx    context.Context
}
