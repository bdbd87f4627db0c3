// Package modkit provides module wiring and core deps
package modkit

import (
	"github.com/missBerg/eir-open/internal/platform/config"
	"github.com/missBerg/eir-open/internal/platform/logger"
	"github.com/missBerg/eir-open/internal/platform/snapstore"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	Snap snapstore.Backend
}
