// Package store persists chart records: a recipe, its field bindings and
// the rows it draws, so the HTTP API can render a chart again by ID.
//
// Backends:
//   - [MemoryStore] keeps records in process, for development and tests.
//   - [FileStore] writes one JSON file per record under a directory.
//   - [MongoStore] stores records in a MongoDB collection.
//
// Every backend is safe for concurrent use. Lookups of unknown IDs fail with
// [errors.ErrCodeChartNotFound]; malformed IDs with
// [errors.ErrCodeInvalidInput].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/theme"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/recipe"
)

// DefaultListLimit caps List when the caller passes a limit <= 0.
const DefaultListLimit = 50

// Record is a stored chart.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	Title     string        `json:"title,omitempty" bson:"title,omitempty"`
	Recipe    string        `json:"recipe" bson:"recipe"`
	Fields    recipe.Fields `json:"fields" bson:"fields"`
	Data      []data.Datum  `json:"data" bson:"data"`
	Width     float64       `json:"width" bson:"width"`
	Height    float64       `json:"height" bson:"height"`
	Theme     string        `json:"theme,omitempty" bson:"theme,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Validate checks that the record names a registered recipe whose fields
// exist in its data, and that size and theme are usable.
func (r *Record) Validate() error {
	rc, err := recipe.Get(r.Recipe)
	if err != nil {
		return err
	}
	if err := rc.Validate(r.Fields, r.Data); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(r.Width, r.Height); err != nil {
		return err
	}
	if _, err := theme.Get(r.Theme); err != nil {
		return err
	}
	return nil
}

// Summary is the record without its rows, as listed by the API.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Recipe    string    `json:"recipe"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Record) Summary() Summary {
	return Summary{ID: r.ID, Title: r.Title, Recipe: r.Recipe, Rows: len(r.Data), CreatedAt: r.CreatedAt}
}

// Store is implemented by the record backends.
type Store interface {
	// Create assigns an ID and creation time when unset, then saves r.
	Create(ctx context.Context, r *Record) error

	// Get returns the record with the given ID.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) error

	Close() error
}

// prepare fills the generated fields of a new record.
func prepare(r *Record) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid chart id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
