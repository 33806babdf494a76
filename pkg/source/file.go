package source

import (
	"context"
	"slices"
	"sync"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
	"github.com/matzehuels/treepage/pkg/io"
)

// FileSource reads and rewrites a JSON or YAML record file.
type FileSource struct {
	mu   sync.Mutex
	path string
}

// NewFileSource creates a source for the record file at path. The file does
// not need to exist until the first Load; Save creates it.
func NewFileSource(path string) (*FileSource, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := io.FormatOf(path); err != nil {
		return nil, err
	}
	return &FileSource{path: path}, nil
}

// Path returns the record file path.
func (s *FileSource) Path() string { return s.path }

// Load reads every record from the file.
func (s *FileSource) Load(_ context.Context) ([]*hierarchy.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.Import(s.path)
}

// Save merges recs into the file and rewrites it.
func (s *FileSource) Save(_ context.Context, recs ...*hierarchy.Record) error {
	if err := checkSave(recs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := io.Import(s.path)
	if err != nil && !errs.Is(err, errs.ErrCodeFileNotFound) {
		return err
	}
	return io.Export(upsert(existing, recs), s.path)
}

// Close does nothing for file sources.
func (s *FileSource) Close() error { return nil }

// upsert replaces records with matching ids in place and appends the rest.
func upsert(existing, recs []*hierarchy.Record) []*hierarchy.Record {
	out := slices.Clone(existing)
	pos := make(map[string]int, len(out))
	for i, r := range out {
		pos[r.ID()] = i
	}
	for _, r := range recs {
		if i, ok := pos[r.ID()]; ok {
			out[i] = r
			continue
		}
		pos[r.ID()] = len(out)
		out = append(out, r)
	}
	return out
}

var _ Source = (*FileSource)(nil)

