// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/progressrelay/internal/app/store/grid"
	"github.com/dalemusser/progressrelay/internal/app/store/replies"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies for the app: the progress grid,
// the reply table, and the Mongo client when the grid lives in MongoDB.
type DBDeps struct {
	Grid    grid.Backend
	Replies *replies.Table

	MongoClient   *mongo.Client   // nil unless grid_backend is mongo
	MongoDatabase *mongo.Database // holds the grid_cells collection
}
