// internal/app/store/grid/mongo.go
package grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// cellDoc is one non-empty cell of a Mongo-hosted grid.
type cellDoc struct {
	Grid      string    `bson:"grid"`
	Row       int       `bson:"row"`
	Col       int       `bson:"col"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// CellsCollection holds one document per non-empty cell. Its unique
// (grid, row, col) index is created by system/indexes.
const CellsCollection = "grid_cells"

// Mongo is a grid stored as one document per cell in CellsCollection.
// Several grids can share the collection, keyed by name.
type Mongo struct {
	c    *mongo.Collection
	grid string
}

// NewMongo returns the grid called name inside db.
func NewMongo(db *mongo.Database, name string) *Mongo {
	return &Mongo{c: db.Collection(CellsCollection), grid: name}
}

func (m *Mongo) find(ctx context.Context, filter bson.M) ([]cellDoc, error) {
	cur, err := m.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []cellDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// place lays docs out by index (row or column number) into a snapshot.
func place(docs []cellDoc, index func(cellDoc) int) []string {
	last := 0
	for _, d := range docs {
		last = max(last, index(d))
	}
	out := make([]string, last)
	for _, d := range docs {
		if i := index(d); i >= 1 {
			out[i-1] = d.Value
		}
	}
	return trimTrailing(out)
}

func (m *Mongo) ReadRow(ctx context.Context, row int) ([]string, error) {
	docs, err := m.find(ctx, bson.M{"grid": m.grid, "row": row})
	if err != nil {
		return nil, fmt.Errorf("read row %d: %w", row, err)
	}
	return place(docs, func(d cellDoc) int { return d.Col }), nil
}

func (m *Mongo) ReadColumn(ctx context.Context, col int) ([]string, error) {
	docs, err := m.find(ctx, bson.M{"grid": m.grid, "col": col})
	if err != nil {
		return nil, fmt.Errorf("read column %d: %w", col, err)
	}
	return place(docs, func(d cellDoc) int { return d.Row }), nil
}

func (m *Mongo) ReadCell(ctx context.Context, row, col int) (string, error) {
	var d cellDoc
	err := m.c.FindOne(ctx, bson.M{"grid": m.grid, "row": row, "col": col}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read cell (%d, %d): %w", row, col, err)
	}
	return d.Value, nil
}

func (m *Mongo) WriteCell(ctx context.Context, row, col int, value any) error {
	if err := checkCoords(row, col); err != nil {
		return err
	}
	filter := bson.M{"grid": m.grid, "row": row, "col": col}
	update := bson.M{
		"$set": bson.M{
			"value":      cellText(value),
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := m.c.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("write cell (%d, %d): %w", row, col, err)
	}
	return nil
}

func (m *Mongo) Name() string { return BackendMongo }

func (m *Mongo) Ping(ctx context.Context) error {
	return m.c.Database().Client().Ping(ctx, readpref.Primary())
}

// Close is a no-op; the client is owned and disconnected by bootstrap.
func (m *Mongo) Close() error { return nil }
