// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/progressrelay/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backends are
// open, but before the HTTP handler is built. It applies timeout overrides
// and checks that the grid answers, so a missing share or a wrong
// spreadsheet ID fails at boot instead of on the first message.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Grid:   appCfg.TimeoutGrid,
		Lookup: appCfg.TimeoutLookup,
		Event:  appCfg.TimeoutEvent,
	})
	cur := timeouts.Current()
	logger.Info("timeouts",
		zap.Duration("grid", cur.Grid),
		zap.Duration("lookup", cur.Lookup),
		zap.Duration("event", cur.Event))

	pctx, cancel := context.WithTimeout(ctx, timeouts.Grid())
	defer cancel()
	if err := deps.Grid.Ping(pctx); err != nil {
		logger.Error("grid unreachable at startup", zap.String("backend", deps.Grid.Name()), zap.Error(err))
		return err
	}
	return nil
}
