// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	callbackfeature "github.com/dalemusser/progressrelay/internal/app/features/callback"
	healthfeature "github.com/dalemusser/progressrelay/internal/app/features/health"
	homefeature "github.com/dalemusser/progressrelay/internal/app/features/home"
	"github.com/dalemusser/progressrelay/internal/app/relay"
	"github.com/dalemusser/progressrelay/internal/app/store/progress"
	"github.com/dalemusser/progressrelay/internal/app/system/auditlog"
	"github.com/dalemusser/progressrelay/internal/app/system/messenger"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, schema setup,
// and the Startup hook have completed. The router serves three routes: the
// liveness banner at /, the grid health check at /health, and the LINE
// webhook at /callback.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	appCfg, err := resolveConfig(appCfg)
	if err != nil {
		return nil, err
	}

	line, err := messenger.New(appCfg.LineChannelAccessToken)
	if err != nil {
		logger.Error("LINE client init failed", zap.Error(err))
		return nil, err
	}

	recorder := progress.New(deps.Grid, progress.Options{
		Layout: appCfg.Layout,
		Window: appCfg.Window,
		Mode:   appCfg.RowMode,
	})

	audit := auditlog.New(logger, auditlog.Config{Progress: appCfg.AuditLogProgress})

	dispatcher := relay.New(relayConfig(appCfg), relay.Deps{
		Replies:  deps.Replies,
		Recorder: recorder,
		Profiles: line,
		Replier:  line,
		Audit:    audit,
	}, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Grid, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// LINE webhook
	callbackHandler := callbackfeature.NewHandler(appCfg.LineChannelSecret, dispatcher, logger)
	r.Mount("/callback", callbackfeature.Routes(callbackHandler))

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	return r, nil
}
