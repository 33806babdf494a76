// Package source loads and saves flat record sets from the stores treepage
// can page through.
//
// # Drivers
//
//   - file: a JSON or YAML record file (see package io)
//   - sqlite: a table in a SQLite database
//   - bolt: a bucket in a bbolt database file
//   - redis: a list and a hash in a Redis database
//   - mongo: a MongoDB collection
//
// Every driver keeps records in insertion order, since that order is the
// sibling order of the sorted output. [Source.Save] upserts: records already
// stored keep their position, new ones are appended.
//
// # Usage
//
//	src, err := source.Open(ctx, source.Config{Driver: "sqlite", DSN: "pages.db"})
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	recs, err := src.Load(ctx)
package source

import (
	"context"
	"fmt"
	"time"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
	"github.com/matzehuels/treepage/pkg/observability"
)

// Driver names.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// DefaultNamespace names the table, bucket, key prefix or collection used
// when Config.Namespace is empty.
const DefaultNamespace = "records"

// Drivers returns the supported driver names.
func Drivers() []string {
	return []string{DriverFile, DriverSQLite, DriverBolt, DriverRedis, DriverMongo}
}

// Source is a record store.
type Source interface {
	// Load returns every record in stored order. Records are unbound.
	Load(ctx context.Context) ([]*hierarchy.Record, error)

	// Save upserts records. Existing records keep their position.
	Save(ctx context.Context, recs ...*hierarchy.Record) error

	// Close releases the connection or file handle.
	Close() error
}

// Config selects a driver and where it stores records.
type Config struct {
	Driver    string // One of Drivers()
	DSN       string // File path, or server URI for redis and mongo
	Namespace string // Table, bucket, key prefix or collection
}

// Open connects to the store described by cfg. Calls on the returned Source
// are reported to the registered observability hooks.
func Open(ctx context.Context, cfg Config) (Source, error) {
	if err := errs.ValidateChoice(errs.ErrCodeInvalidDriver, "driver", cfg.Driver, Drivers()); err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s source needs a dsn", cfg.Driver)
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	var (
		src Source
		err error
	)
	switch cfg.Driver {
	case DriverFile:
		src, err = NewFileSource(cfg.DSN)
	case DriverSQLite:
		src, err = NewSQLiteSource(ctx, cfg.DSN, cfg.Namespace)
	case DriverBolt:
		src, err = NewBoltSource(cfg.DSN, cfg.Namespace)
	case DriverRedis:
		src, err = NewRedisSource(ctx, cfg.DSN, cfg.Namespace)
	case DriverMongo:
		src, err = NewMongoSource(ctx, cfg.DSN, cfg.Namespace)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", cfg.Driver, err)
	}
	return &instrumented{Source: src, driver: cfg.Driver}, nil
}

// instrumented reports loads and saves to the source hooks.
type instrumented struct {
	Source
	driver string
}

func (s *instrumented) Load(ctx context.Context) ([]*hierarchy.Record, error) {
	start := time.Now()
	recs, err := s.Source.Load(ctx)
	observability.Source().OnLoad(ctx, s.driver, len(recs), time.Since(start), err)
	return recs, err
}

func (s *instrumented) Save(ctx context.Context, recs ...*hierarchy.Record) error {
	start := time.Now()
	err := s.Source.Save(ctx, recs...)
	observability.Source().OnSave(ctx, s.driver, len(recs), time.Since(start), err)
	return err
}

// row is the stored shape of a record, shared by the database drivers.
type row struct {
	ID     string             `json:"id"`
	Parent string             `json:"parent,omitempty"`
	Title  string             `json:"title,omitempty"`
	Meta   hierarchy.Metadata `json:"meta,omitempty"`
}

func toRow(r *hierarchy.Record) row {
	return row{ID: r.ID(), Parent: r.ParentID(), Title: r.Title, Meta: r.Meta}
}

// record converts a stored row back, rejecting rows a store should never
// have accepted.
func (w row) record() (*hierarchy.Record, error) {
	if err := errs.ValidateNodeID(w.ID); err != nil {
		return nil, errs.Wrap(errs.ErrCodeCorruption, err, "stored record")
	}
	r := hierarchy.NewRecord(w.ID, w.Parent)
	r.Title = w.Title
	if w.Meta != nil {
		r.Meta = w.Meta
	}
	return r, nil
}

// checkSave validates records before any write so a bad batch is never
// partially applied.
func checkSave(recs []*hierarchy.Record) error {
	for _, r := range recs {
		if r == nil {
			return errs.Wrap(errs.ErrCodeInvalidNode, hierarchy.ErrNilNode, "cannot save record")
		}
		if err := errs.ValidateNodeID(r.ID()); err != nil {
			return err
		}
	}
	return nil
}
