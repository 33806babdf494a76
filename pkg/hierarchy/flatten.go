package hierarchy

import "slices"

// Page is the ordered, level-annotated output of Flatten.
type Page struct {
	// Nodes holds the emitted nodes in display order. They are the same
	// instances that were passed to Build, with levels assigned.
	Nodes []Node

	// Window is the window the page was cut with.
	Window Window

	// Visited is the final visit count. For an unpaged window it equals the
	// number of input nodes plus any auxiliary roots.
	Visited int

	// Ancestors counts nodes back-filled as context for a page that opens
	// inside a subtree. They do not occupy window slots.
	Ancestors int

	// Orphans counts nodes emitted by the trailing-orphan pass.
	Orphans int

	// Orphaned lists parent ids whose subtrees were never entered by the
	// depth-first walk, in first-insertion order.
	Orphaned []string

	// Repaired, Auxiliary and Placeholders are carried over from the Tree.
	Repaired     []Node
	Auxiliary    []Node
	Placeholders []Node
}

// IDs returns the ids of the emitted nodes in order.
func (p Page) IDs() []string {
	ids := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		ids[i] = n.ID()
	}
	return ids
}

// Levels returns the levels of the emitted nodes in order.
func (p Page) Levels() []int {
	levels := make([]int, len(p.Nodes))
	for i, n := range p.Nodes {
		levels[i] = n.Level()
	}
	return levels
}

// Missing reports whether n is a placeholder for a parent that is absent
// from the input. Auxiliary roots that resolved to a real node are not
// missing.
func (p Page) Missing(n Node) bool {
	return slices.ContainsFunc(p.Placeholders, func(x Node) bool { return x == n })
}

// Empty reports whether nothing was emitted.
func (p Page) Empty() bool { return len(p.Nodes) == 0 }

// frame is a pending visit on the walk stack.
type frame struct {
	node  Node
	level int
}

// flattener holds the bookkeeping for one Flatten call.
type flattener struct {
	tree    *Tree
	window  Window
	count   int
	visited map[string]bool
	emitted map[string]bool
	page    Page
}

// Flatten walks t depth-first and returns the nodes that fall inside w.
//
// Every visit increments a global count, whatever the node's depth. For an
// unpaged window all nodes are emitted in pre-order with roots at level 0
// and children at their parent's level plus one.
//
// For a paged window only visits with Offset <= count < End are emitted and
// the walk stops at End. The node visited at count == Offset is preceded by
// its ancestor chain (root first) so a page that opens inside a subtree keeps
// its context; those ancestors take no window slot.
//
// Buckets are removed from t as their parents are entered. Whatever remains
// after the walk belongs to parents that were never visited. If the window is
// not yet full, those children are appended at level 0, bucket by bucket.
//
// Flatten consumes t.
func Flatten(t *Tree, w Window) Page {
	f := &flattener{
		tree:    t,
		window:  w,
		visited: make(map[string]bool, t.size),
		emitted: make(map[string]bool),
	}
	f.page.Window = w
	f.page.Repaired = t.Repaired
	f.page.Auxiliary = t.Auxiliary
	f.page.Placeholders = t.Placeholders

	f.walk()
	f.trailing()

	f.page.Visited = f.count
	return f.page
}

// walk performs the bounded pre-order traversal with an explicit stack.
func (f *flattener) walk() {
	stack := make([]frame, 0, len(f.tree.Roots))
	for _, r := range slices.Backward(f.tree.Roots) {
		stack = append(stack, frame{node: r, level: 0})
	}

	for len(stack) > 0 {
		if f.window.Exhausted(f.count) {
			return
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		if f.visited[n.ID()] {
			continue
		}
		f.visited[n.ID()] = true
		n.SetLevel(top.level)

		if f.window.Paged() && f.count == f.window.Offset() && n.HasParent() {
			f.backfill(n, top.level)
		}
		if f.window.Contains(f.count) {
			f.emit(n)
		}
		f.count++

		for _, c := range slices.Backward(f.tree.take(n.ID())) {
			stack = append(stack, frame{node: c, level: top.level + 1})
		}
	}
}

// backfill emits the ancestor chain of n, root first, without counting it.
// The chain is cut at level 0 so levels never go negative.
func (f *flattener) backfill(n Node, level int) {
	seen := map[string]bool{n.ID(): true}
	var chain []Node
	for p := f.tree.parentOf(n); p != nil && len(chain) < level; p = f.tree.parentOf(p) {
		if seen[p.ID()] {
			break
		}
		seen[p.ID()] = true
		chain = append(chain, p)
	}

	for i, p := range slices.Backward(chain) {
		if f.emitted[p.ID()] {
			continue
		}
		p.SetLevel(level - (i + 1))
		f.emit(p)
		f.page.Ancestors++
	}
}

// trailing lists children of never-visited parents once the walk has
// finished without filling the window.
func (f *flattener) trailing() {
	pending := f.tree.Pending()
	if len(pending) == 0 {
		return
	}
	f.page.Orphaned = pending
	if f.window.Exhausted(f.count) {
		return
	}

	for _, key := range pending {
		for _, n := range f.tree.Children(key) {
			if f.window.Exhausted(f.count) {
				return
			}
			if f.visited[n.ID()] {
				continue
			}
			f.visited[n.ID()] = true
			n.SetLevel(0)
			if f.window.Contains(f.count) {
				f.emit(n)
				f.page.Orphans++
			}
			f.count++
		}
	}
}

func (f *flattener) emit(n Node) {
	if f.emitted[n.ID()] {
		return
	}
	f.emitted[n.ID()] = true
	f.page.Nodes = append(f.page.Nodes, n)
}
