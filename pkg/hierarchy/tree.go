package hierarchy

// RepairHook is called once for every node whose self-referencing parent was
// cleared by Build. Callers use it to persist the corrected parent field.
type RepairHook func(n Node)

// PlaceholderFunc creates a stand-in root for a parent id that cannot be
// resolved through any child.
type PlaceholderFunc func(id string) Node

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	onRepair    RepairHook
	placeholder PlaceholderFunc
}

// WithRepairHook registers a hook for self-cycle repairs.
func WithRepairHook(h RepairHook) BuildOption {
	return func(c *buildConfig) { c.onRepair = h }
}

// WithPlaceholder overrides how unresolvable parents are synthesized.
func WithPlaceholder(f PlaceholderFunc) BuildOption {
	return func(c *buildConfig) { c.placeholder = f }
}

// defaultPlaceholder synthesizes an unbound Record titled with the id.
func defaultPlaceholder(id string) Node {
	r := NewRecord(id, "")
	r.Title = id
	return r
}

// Tree is the partition of a flat collection into roots and a parent-keyed
// child index.
//
// A Tree is consumed by Flatten: buckets are removed as their parents are
// entered, so a Tree must not be flattened twice. Build a new one per page.
type Tree struct {
	// Roots holds parentless nodes in input order, or the synthesized
	// auxiliary roots when no true root exists.
	Roots []Node

	// Repaired lists nodes whose self-referencing parent was cleared.
	Repaired []Node

	// Auxiliary lists roots synthesized for parentless groups of children.
	Auxiliary []Node

	// Placeholders is the subset of Auxiliary created by the placeholder
	// func because the parent could not be resolved at all.
	Placeholders []Node

	children map[string][]Node
	keys     []string // bucket keys in first-insertion order
	aux      map[string]Node
	size     int
}

// Build partitions nodes into roots and a child index keyed by parent id.
//
// Input order is preserved for roots and within each bucket; it is the
// tie-break for sibling order. A node whose parent id equals its own id is
// repaired in place: its parent is cleared, it becomes a root, and the repair
// hook (if any) is called. Nil nodes are skipped.
//
// When no node is a root but some nodes have parents, one auxiliary root is
// synthesized per distinct parent id, resolved through the first child's
// Parent, so the walk always has an entry point. Build never fails.
func Build(nodes []Node, opts ...BuildOption) *Tree {
	cfg := buildConfig{placeholder: defaultPlaceholder}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Tree{children: make(map[string][]Node)}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		t.size++

		if n.HasParent() && n.ParentID() == n.ID() {
			n.SetParent("")
			t.Repaired = append(t.Repaired, n)
			if cfg.onRepair != nil {
				cfg.onRepair(n)
			}
		}

		if !n.HasParent() {
			t.Roots = append(t.Roots, n)
			continue
		}
		t.attach(n.ParentID(), n)
	}

	if len(t.Roots) == 0 && len(t.keys) > 0 {
		t.anchor(cfg.placeholder)
	}
	return t
}

func (t *Tree) attach(parentID string, n Node) {
	if _, ok := t.children[parentID]; !ok {
		t.keys = append(t.keys, parentID)
	}
	t.children[parentID] = append(t.children[parentID], n)
}

// anchor synthesizes one auxiliary root per distinct parent key.
func (t *Tree) anchor(placeholder PlaceholderFunc) {
	t.aux = make(map[string]Node, len(t.keys))
	for _, key := range t.keys {
		parent := t.children[key][0].Parent()
		if parent == nil || parent.ID() != key {
			parent = placeholder(key)
			t.Placeholders = append(t.Placeholders, parent)
		}
		if a, ok := parent.(Auxiliary); ok {
			a.SetAuxiliary(true)
		}
		t.aux[key] = parent
		t.Roots = append(t.Roots, parent)
		t.Auxiliary = append(t.Auxiliary, parent)
	}
}

// Len returns the number of input nodes (auxiliary roots excluded).
func (t *Tree) Len() int { return t.size }

// Children returns the pending children of the node with the given id.
// Once Flatten has entered that node, its bucket is gone and Children
// returns nil.
func (t *Tree) Children(id string) []Node {
	return t.children[id]
}

// Pending returns the parent ids whose buckets have not been consumed, in
// first-insertion order.
func (t *Tree) Pending() []string {
	var out []string
	for _, k := range t.keys {
		if _, ok := t.children[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// take removes and returns the bucket for id.
func (t *Tree) take(id string) []Node {
	kids, ok := t.children[id]
	if !ok {
		return nil
	}
	delete(t.children, id)
	return kids
}

// parentOf resolves n's parent, falling back to a synthesized auxiliary root
// when the node's own resolver cannot see it.
func (t *Tree) parentOf(n Node) Node {
	if p := n.Parent(); p != nil {
		return p
	}
	if !n.HasParent() {
		return nil
	}
	return t.aux[n.ParentID()]
}
