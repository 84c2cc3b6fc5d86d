// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/progressrelay/internal/app/store/grid"
	"github.com/dalemusser/progressrelay/internal/app/store/replies"
	"github.com/dalemusser/progressrelay/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the configured grid backend and loads the reply table.
// A reply table that cannot be read aborts startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	appCfg, err := resolveConfig(appCfg)
	if err != nil {
		return DBDeps{}, err
	}

	tbl, err := replies.Load(appCfg.RepliesPath)
	if err != nil {
		logger.Error("reply table load failed", zap.String("path", appCfg.RepliesPath), zap.Error(err))
		return DBDeps{}, err
	}
	logger.Info("reply table loaded", zap.String("path", appCfg.RepliesPath), zap.Int("days", tbl.Len()))

	deps, err := openGrid(ctx, appCfg, logger)
	if err != nil {
		return DBDeps{}, err
	}
	deps.Replies = tbl

	if appCfg.GridRatePerMinute > 0 {
		deps.Grid = grid.Limited(deps.Grid, ratelimit.PerMinute(appCfg.GridRatePerMinute))
		logger.Info("grid rate limit enabled", zap.Int("per_minute", appCfg.GridRatePerMinute))
	}
	return deps, nil
}

func openGrid(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	switch appCfg.GridBackend {
	case grid.BackendSheets:
		s, err := grid.OpenSheets(ctx, appCfg.SheetsSpreadsheetID, appCfg.SheetsSheetName, appCfg.SheetsCredentialsBytes)
		if err != nil {
			logger.Error("google sheets client init failed", zap.Error(err))
			return DBDeps{}, err
		}
		logger.Info("grid backend: google sheets", zap.String("spreadsheet_id", appCfg.SheetsSpreadsheetID))
		return DBDeps{Grid: s}, nil

	case grid.BackendXLSX:
		x, err := grid.OpenXLSX(appCfg.XLSXPath, appCfg.XLSXSheet)
		if err != nil {
			logger.Error("workbook open failed", zap.String("path", appCfg.XLSXPath), zap.Error(err))
			return DBDeps{}, err
		}
		logger.Info("grid backend: xlsx", zap.String("path", appCfg.XLSXPath))
		return DBDeps{Grid: x}, nil

	case grid.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			logger.Error("MongoDB connect failed", zap.Error(err))
			return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			logger.Error("MongoDB ping failed", zap.Error(err))
			return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
		}
		db := client.Database(appCfg.MongoDatabase)
		m := grid.NewMongo(db, appCfg.MongoGrid)
		logger.Info("grid backend: mongo",
			zap.String("database", appCfg.MongoDatabase),
			zap.String("grid", appCfg.MongoGrid))
		return DBDeps{Grid: m, MongoClient: client, MongoDatabase: db}, nil

	case grid.BackendMemory:
		logger.Warn("grid backend: memory (progress is lost on restart)")
		return DBDeps{Grid: grid.NewMemory()}, nil
	}
	return DBDeps{}, fmt.Errorf("unknown grid_backend %q", appCfg.GridBackend)
}
