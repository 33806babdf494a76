// Package io reads and writes flat record files and sorted pages.
//
// # Record Format
//
// A record file holds one top-level array. Each record names its parent by
// id; an empty or missing parent makes it a root:
//
//	{
//	  "records": [
//	    {"id": "home", "title": "Home"},
//	    {"id": "about", "parent": "home", "title": "About us"},
//	    {"id": "team", "parent": "about", "meta": {"weight": 3}}
//	  ]
//	}
//
// The same shape is accepted as YAML:
//
//	records:
//	  - id: home
//	    title: Home
//	  - id: about
//	    parent: home
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - parent: Id of the parent record
//   - title: Display label (the id is shown when empty)
//   - meta: Freeform object
//
// Record order in the file is significant: it is the sibling order of the
// sorted output.
//
// # Import
//
// Use [Import] to read a file, picking the codec from the extension, or
// [ReadJSON] and [ReadYAML] to read from any io.Reader. Ids are validated and
// duplicates rejected. Parent references are not checked: records whose
// parent is missing are a normal input for the sorter.
//
// The returned records are unbound. Index them with [hierarchy.NewIndex]
// before sorting so parents resolve.
//
// # Export
//
// [Export], [WriteJSON] and [WriteYAML] write records back in the same
// format. [WritePage] encodes a sorted page, with levels and pagination
// counters, as JSON.
package io
