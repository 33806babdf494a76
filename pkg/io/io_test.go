package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/hierarchy"
)

const sample = `{
  "records": [
    {"id": "home", "title": "Home"},
    {"id": "about", "parent": "home", "title": "About"},
    {"id": "team", "parent": "about", "meta": {"weight": 3}}
  ]
}`

func TestReadJSON(t *testing.T) {
	recs, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("ReadJSON() returned %d records, want 3", len(recs))
	}
	if recs[1].ParentID() != "home" || recs[1].Title != "About" {
		t.Errorf("recs[1] = %+v, want about under home", recs[1])
	}
	if recs[0].HasParent() {
		t.Errorf("home should be a root")
	}
	if recs[2].Meta["weight"] != float64(3) {
		t.Errorf("team meta = %v, want weight 3", recs[2].Meta)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{"malformed", `{"records": [`, func(err error) bool { return strings.Contains(err.Error(), "decode") }},
		{"empty id", `{"records": [{"id": ""}]}`, func(err error) bool { return errs.Is(err, errs.ErrCodeInvalidNode) }},
		{"duplicate", `{"records": [{"id": "a"}, {"id": "a"}]}`, func(err error) bool {
			return errors.Is(err, hierarchy.ErrDuplicateNodeID)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil || !tt.check(err) {
				t.Errorf("ReadJSON() error = %v", err)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	input := `
records:
  - id: home
    title: Home
  - id: about
    parent: home
`
	recs, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}
	if len(recs) != 2 || recs[1].ParentID() != "home" {
		t.Errorf("ReadYAML() = %v, want home and about", recs)
	}

	recs, err = ReadYAML(strings.NewReader(""))
	if err != nil || len(recs) != 0 {
		t.Errorf("ReadYAML(empty) = %v, %v, want no records", recs, err)
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	recs, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.json", "out.yaml", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(recs, path); err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			back, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if len(back) != len(recs) {
				t.Fatalf("Import() returned %d records, want %d", len(back), len(recs))
			}
			for i := range recs {
				if back[i].ID() != recs[i].ID() || back[i].ParentID() != recs[i].ParentID() || back[i].Title != recs[i].Title {
					t.Errorf("record %d = %s/%s/%s, want %s/%s/%s", i,
						back[i].ID(), back[i].ParentID(), back[i].Title,
						recs[i].ID(), recs[i].ParentID(), recs[i].Title)
				}
			}
		})
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := Import("records.csv"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Import(csv) error = %v, want %s", err, errs.ErrCodeInvalidFormat)
	}
	missing := filepath.Join(t.TempDir(), "nope.json")
	if _, err := Import(missing); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(bad); err == nil {
		t.Error("Import(bad) should fail")
	}
}

func TestWritePage(t *testing.T) {
	recs, _ := ReadJSON(strings.NewReader(sample))
	hierarchy.NewIndex(recs)
	nodes := make([]hierarchy.Node, len(recs))
	for i, r := range recs {
		nodes[i] = r
	}
	p := hierarchy.Flatten(hierarchy.Build(nodes), hierarchy.Window{Page: 2, PerPage: 2})

	var buf bytes.Buffer
	if err := WritePage(p, &buf); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}

	var doc PageDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Page != 2 || doc.PerPage != 2 || doc.Ancestors != 2 {
		t.Errorf("doc header = %+v", doc)
	}
	want := []struct {
		id      string
		level   int
		context bool
	}{{"home", 0, true}, {"about", 1, true}, {"team", 2, false}}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("doc has %d nodes, want %d", len(doc.Nodes), len(want))
	}
	for i, w := range want {
		got := doc.Nodes[i]
		if got.ID != w.id || got.Level != w.level || got.Context != w.context {
			t.Errorf("node %d = %+v, want %s level %d context %v", i, got, w.id, w.level, w.context)
		}
	}
	if doc.Nodes[2].Title != "team" {
		t.Errorf("untitled node title = %q, want id", doc.Nodes[2].Title)
	}
}
