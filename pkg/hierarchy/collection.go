package hierarchy

import (
	"errors"
	"iter"
	"slices"
	"strings"

	errs "github.com/matzehuels/treepage/pkg/errors"
)

var (
	// ErrNilNode is returned by [Collection.Add] and [Collection.Set] when the
	// node is nil.
	ErrNilNode = errors.New("node must not be nil")

	// ErrInvalidNodeID is returned by [Collection.Add] and [Collection.Set]
	// when the node ID is empty, or when Set is called with an id that does
	// not match the node's own id.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Collection.Add] and [NewCollection]
	// when a node with the same ID is already present.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Collection is an ordered, id-indexed set of nodes together with the
// pagination settings used when it is sorted.
//
// Insertion order is the sibling tie-break. A Collection is not safe for
// concurrent use.
type Collection struct {
	nodes    []Node
	index    map[string]int
	window   Window
	onRepair RepairHook
}

// NewCollection creates a collection from nodes in order. It fails without
// side effects on the first nil, id-less or duplicate node.
func NewCollection(nodes ...Node) (*Collection, error) {
	c := &Collection{index: make(map[string]int, len(nodes))}
	for _, n := range nodes {
		if err := c.Add(n); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func checkNode(n Node) error {
	if n == nil {
		return errs.Wrap(errs.ErrCodeInvalidNode, ErrNilNode, "cannot insert node")
	}
	if n.ID() == "" {
		return errs.Wrap(errs.ErrCodeInvalidNode, ErrInvalidNodeID, "cannot insert node")
	}
	return nil
}

// Add appends n. It rejects nil nodes, empty ids and ids already present.
func (c *Collection) Add(n Node) error {
	if err := checkNode(n); err != nil {
		return err
	}
	if _, ok := c.index[n.ID()]; ok {
		return errs.Wrap(errs.ErrCodeInvalidNode, ErrDuplicateNodeID, "cannot insert node %q", n.ID())
	}
	c.index[n.ID()] = len(c.nodes)
	c.nodes = append(c.nodes, n)
	return nil
}

// Set stores n under id. An existing node with that id is replaced in place,
// keeping its position; otherwise n is appended. The id must match n.ID().
func (c *Collection) Set(id string, n Node) error {
	if err := checkNode(n); err != nil {
		return err
	}
	if id != n.ID() {
		return errs.Wrap(errs.ErrCodeInvalidNode, ErrInvalidNodeID, "key %q does not match node %q", id, n.ID())
	}
	if i, ok := c.index[id]; ok {
		c.nodes[i] = n
		return nil
	}
	c.index[id] = len(c.nodes)
	c.nodes = append(c.nodes, n)
	return nil
}

// Get returns the node with the given id.
func (c *Collection) Get(id string) (Node, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.nodes[i], true
}

// Has reports whether a node with the given id is present.
func (c *Collection) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Remove deletes the node with the given id and reports whether it existed.
// Children that referenced it keep their parent id and are handled as
// orphans when sorted.
func (c *Collection) Remove(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.nodes = slices.Delete(c.nodes, i, i+1)
	delete(c.index, id)
	for j := i; j < len(c.nodes); j++ {
		c.index[c.nodes[j].ID()] = j
	}
	return true
}

// Len returns the number of nodes.
func (c *Collection) Len() int { return len(c.nodes) }

// Nodes returns the nodes in insertion order. The slice is a copy; the nodes
// are not.
func (c *Collection) Nodes() []Node { return slices.Clone(c.nodes) }

// All iterates over the nodes in insertion order.
func (c *Collection) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, n := range c.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// SetPage sets the 1-based page number. Zero disables pagination.
func (c *Collection) SetPage(page int) error {
	if err := errs.ValidatePage(page); err != nil {
		return err
	}
	c.window.Page = page
	return nil
}

// SetPerPage sets the number of visits per page. Zero disables pagination.
func (c *Collection) SetPerPage(perPage int) error {
	if err := errs.ValidatePerPage(perPage); err != nil {
		return err
	}
	c.window.PerPage = perPage
	return nil
}

// SetWindow replaces the window after validating it.
func (c *Collection) SetWindow(w Window) error {
	v, err := NewWindow(w.Page, w.PerPage)
	if err != nil {
		return err
	}
	c.window = v
	return nil
}

// Window returns the current pagination window.
func (c *Collection) Window() Window { return c.window }

// OnRepair registers a hook called for every self-cycle repaired by Sort.
func (c *Collection) OnRepair(h RepairHook) { c.onRepair = h }

// Sort builds a fresh tree from the current nodes and flattens it with the
// current window. Levels are written back onto the nodes.
func (c *Collection) Sort() Page {
	var opts []BuildOption
	if c.onRepair != nil {
		opts = append(opts, WithRepairHook(c.onRepair))
	}
	return Flatten(Build(c.nodes, opts...), c.window)
}

// Filter returns the nodes whose label or id contains query, ignoring case,
// in insertion order. An empty query matches every node.
func (c *Collection) Filter(query string) []Node {
	return Match(c.nodes, query)
}

// Match returns the nodes whose label or id contains query, ignoring case.
// Parent references are left untouched, so a matching child whose parent was
// filtered out still resolves through its own resolver.
func Match(nodes []Node, query string) []Node {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(nodes)
	}
	var out []Node
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if strings.Contains(strings.ToLower(n.ID()), q) || strings.Contains(strings.ToLower(LabelOf(n)), q) {
			out = append(out, n)
		}
	}
	return out
}
