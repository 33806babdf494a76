// Package pkg provides the libraries behind treepage.
//
// # Overview
//
// treepage turns flat records that name their parent into a paged,
// depth-first listing where every record carries its indentation level.
// The pkg directory is organized into these areas:
//
//  1. [hierarchy] - Tree building, flattening and pagination
//  2. [source] - Record stores (files, SQLite, Bolt, Redis, MongoDB)
//  3. [io] - JSON and YAML record files and page documents
//  4. [render] - Text outlines, node-link diagrams and format dispatch
//  5. [pipeline] - Orchestration (load → sort → render) with caching
//  6. [cache], [config], [errors], [observability], [buildinfo] - Support
//
// # Architecture
//
// The typical data flow through treepage:
//
//	Record store
//	     ↓
//	[source] package (load records in stored order)
//	     ↓
//	[hierarchy] package (build tree, flatten one page)
//	     ↓
//	[render] package (text, JSON, choices, DOT, SVG, PNG, PDF)
//
// # Quick Start
//
//	recs, _ := io.Import("menu.yaml")
//	hierarchy.NewIndex(recs)
//
//	w, _ := hierarchy.NewWindow(2, 20)
//	page := hierarchy.Flatten(hierarchy.Build(hierarchy.Nodes(recs)), w)
//	for _, n := range page.Nodes {
//	    fmt.Println(strings.Repeat("  ", n.Level()) + hierarchy.LabelOf(n))
//	}
//
// Or run the full pipeline against a store:
//
//	src, _ := source.Open(ctx, source.Config{Driver: "sqlite", DSN: "pages.db"})
//	res, _ := pipeline.NewRunner(nil, nil, nil).Execute(ctx, src, pipeline.Options{
//	    Page: 2, PerPage: 20,
//	})
//
// [hierarchy]: github.com/matzehuels/treepage/pkg/hierarchy
// [source]: github.com/matzehuels/treepage/pkg/source
// [io]: github.com/matzehuels/treepage/pkg/io
// [render]: github.com/matzehuels/treepage/pkg/render
// [pipeline]: github.com/matzehuels/treepage/pkg/pipeline
// [cache]: github.com/matzehuels/treepage/pkg/cache
// [config]: github.com/matzehuels/treepage/pkg/config
// [errors]: github.com/matzehuels/treepage/pkg/errors
// [observability]: github.com/matzehuels/treepage/pkg/observability
// [buildinfo]: github.com/matzehuels/treepage/pkg/buildinfo
package pkg
