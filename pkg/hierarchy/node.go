package hierarchy

import "maps"

// Node is a record that may reference a parent record by id.
//
// Nodes are owned by the caller. Build and Flatten mutate them in place: Build
// clears a self-referencing parent and Flatten assigns levels. Nothing in this
// package copies a node.
type Node interface {
	// ID returns the identifier, unique within a collection.
	ID() string
	// ParentID returns the parent's identifier, or "" for a root.
	ParentID() string
	// HasParent reports whether the node references a parent.
	HasParent() bool
	// Parent resolves the parent reference. It returns nil when the node has
	// no parent or the parent cannot be resolved.
	Parent() Node
	// SetParent replaces the parent reference. An empty id makes the node a root.
	SetParent(id string)
	// Level returns the display depth assigned by the last Flatten.
	Level() int
	// SetLevel assigns the display depth.
	SetLevel(level int)
}

// Auxiliary is implemented by nodes that can be flagged as synthesized
// anchors for an otherwise parentless group of children.
type Auxiliary interface {
	IsAuxiliary() bool
	SetAuxiliary(aux bool)
}

// Labeled is implemented by nodes that carry a display label.
type Labeled interface {
	Label() string
}

// IsAuxiliary reports whether n implements Auxiliary and is flagged.
func IsAuxiliary(n Node) bool {
	a, ok := n.(Auxiliary)
	return ok && a.IsAuxiliary()
}

// LabelOf returns the node's label, falling back to its id.
func LabelOf(n Node) string {
	if l, ok := n.(Labeled); ok {
		if s := l.Label(); s != "" {
			return s
		}
	}
	return n.ID()
}

// Metadata stores arbitrary key-value pairs attached to a record.
type Metadata map[string]any

// Resolver looks up records by id. It backs Record.Parent.
type Resolver interface {
	Lookup(id string) (*Record, bool)
}

// Index is a Resolver over an in-memory set of records.
type Index map[string]*Record

// NewIndex indexes records by id and binds each record to the index, so
// that Parent resolves against the whole set. Later duplicates win.
func NewIndex(records []*Record) Index {
	idx := make(Index, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		idx[r.id] = r
		r.resolver = idx
	}
	return idx
}

// Nodes returns the records as a Node slice, in order.
func Nodes(records []*Record) []Node {
	out := make([]Node, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Lookup implements Resolver.
func (idx Index) Lookup(id string) (*Record, bool) {
	r, ok := idx[id]
	return r, ok
}

// Record is the stock Node implementation used by the record stores and
// the CLI. The zero value is not usable; create records with NewRecord.
type Record struct {
	Title string   // Display label
	Meta  Metadata // Arbitrary key-value metadata (never nil after NewRecord)

	id        string
	parentID  string
	level     int
	auxiliary bool
	resolver  Resolver
}

// NewRecord creates a record. An empty parentID makes it a root.
func NewRecord(id, parentID string) *Record {
	return &Record{id: id, parentID: parentID, Meta: Metadata{}}
}

// Bind sets the resolver used by Parent.
func (r *Record) Bind(res Resolver) { r.resolver = res }

func (r *Record) ID() string          { return r.id }
func (r *Record) ParentID() string    { return r.parentID }
func (r *Record) HasParent() bool     { return r.parentID != "" }
func (r *Record) SetParent(id string) { r.parentID = id }
func (r *Record) Level() int          { return r.level }
func (r *Record) SetLevel(level int)  { r.level = level }

// Parent resolves the parent through the bound resolver.
func (r *Record) Parent() Node {
	if r.parentID == "" || r.resolver == nil {
		return nil
	}
	p, ok := r.resolver.Lookup(r.parentID)
	if !ok || p == nil {
		return nil
	}
	return p
}

// IsAuxiliary reports whether the record was synthesized as an anchor root.
func (r *Record) IsAuxiliary() bool { return r.auxiliary }

// SetAuxiliary flags the record as a synthesized anchor root.
func (r *Record) SetAuxiliary(aux bool) { r.auxiliary = aux }

// Label returns the title, or the id when the title is empty.
func (r *Record) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return r.id
}

// Clone returns an unbound copy with the same id, parent, title and metadata.
// Level and the auxiliary flag are not copied.
func (r *Record) Clone() *Record {
	c := NewRecord(r.id, r.parentID)
	c.Title = r.Title
	if r.Meta != nil {
		c.Meta = maps.Clone(r.Meta)
	}
	return c
}

var (
	_ Node      = (*Record)(nil)
	_ Auxiliary = (*Record)(nil)
	_ Labeled   = (*Record)(nil)
)
