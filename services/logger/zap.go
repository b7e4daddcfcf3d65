package logsvc

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/trezcool/autolearn/core"
)

// NewZap returns a named zap logger: JSON in PROD, human readable otherwise.
func NewZap(name string, conf *core.Config) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if conf.Env == "PROD" {
		cfg = zap.NewProductionConfig()
	}
	if conf.TestMode {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zl, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building zap logger")
	}
	return zl.Sugar().Named(name), nil
}
