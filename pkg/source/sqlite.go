package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// sqliteDSNExtras is appended to the database path.
const sqliteDSNExtras = "?_busy_timeout=2000&mode=rwc"

// SQLiteSource stores records in one table of a SQLite database. The table
// is named after the namespace and created on open.
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// NewSQLiteSource opens (or creates) the database at path.
func NewSQLiteSource(ctx context.Context, path, namespace string) (*SQLiteSource, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+sqliteDSNExtras)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "open %s", path)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteSource{db: db, table: tableName(namespace)}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSource) initSchema(ctx context.Context) error {
	// WAL is unavailable on some filesystems; the default journal still works.
	_, _ = s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq    INTEGER PRIMARY KEY AUTOINCREMENT,
			id     TEXT NOT NULL UNIQUE,
			parent TEXT NOT NULL DEFAULT '',
			title  TEXT NOT NULL DEFAULT '',
			meta   TEXT NOT NULL DEFAULT '{}'
		);
	`, s.table))
	if err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "create table %s", s.table)
	}
	return nil
}

// Load returns every record ordered by insertion.
func (s *SQLiteSource) Load(ctx context.Context) ([]*hierarchy.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, parent, title, meta FROM %s ORDER BY seq", s.table))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "query %s", s.table)
	}
	defer rows.Close()

	var out []*hierarchy.Record
	for rows.Next() {
		var (
			w    row
			meta string
		)
		if err := rows.Scan(&w.ID, &w.Parent, &w.Title, &meta); err != nil {
			return nil, errs.Wrap(errs.ErrCodeSource, err, "scan %s", s.table)
		}
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &w.Meta); err != nil {
				return nil, errs.Wrap(errs.ErrCodeCorruption, err, "record %s meta", w.ID)
			}
		}
		r, err := w.record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeSource, err, "read %s", s.table)
	}
	return out, nil
}

// Save upserts records in one transaction.
func (s *SQLiteSource) Save(ctx context.Context, recs ...*hierarchy.Record) error {
	if err := checkSave(recs); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, parent, title, meta) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent = excluded.parent,
			title  = excluded.title,
			meta   = excluded.meta
	`, s.table))
	if err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "prepare upsert")
	}
	defer stmt.Close()

	for _, r := range recs {
		meta, err := json.Marshal(r.Meta)
		if err != nil {
			return fmt.Errorf("encode meta of %s: %w", r.ID(), err)
		}
		if r.Meta == nil {
			meta = []byte("{}")
		}
		if _, err := stmt.ExecContext(ctx, r.ID(), r.ParentID(), r.Title, string(meta)); err != nil {
			return errs.Wrap(errs.ErrCodeSource, err, "upsert %s", r.ID())
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.Wrap(errs.ErrCodeSource, err, "commit")
	}
	return nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// tableName reduces a namespace to a safe SQLite identifier.
func tableName(ns string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, ns)
	if name == "" {
		return DefaultNamespace
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}

var _ Source = (*SQLiteSource)(nil)
