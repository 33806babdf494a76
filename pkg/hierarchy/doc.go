// Package hierarchy sorts and paginates flat collections of parent-linked
// records.
//
// # Overview
//
// Many stores keep trees as flat rows where each row names its parent. To
// show such a tree in a list (a menu, an admin table, a select input) the
// rows must be put in depth-first order with an indentation level, and long
// lists must be cut into pages without losing track of where a page sits in
// the tree.
//
// The work happens in two steps. [Build] partitions the nodes into roots and
// a child index keyed by parent id. [Flatten] then walks the tree in
// pre-order and emits the nodes that fall inside a [Window]:
//
//	tree := hierarchy.Build(nodes)
//	page := hierarchy.Flatten(tree, hierarchy.Window{Page: 2, PerPage: 20})
//	for _, n := range page.Nodes {
//	    fmt.Println(strings.Repeat("  ", n.Level()), n.ID())
//	}
//
// [Collection] wraps both steps behind an ordered, id-indexed container with
// its own pagination settings.
//
// # Pagination
//
// Every visited node advances a single global counter, so pages hold a fixed
// number of visits regardless of depth. When a page opens in the middle of a
// subtree, the chain of ancestors of its first node is emitted before it so
// the page still reads as a tree. Those ancestors do not take a slot.
//
// # Degraded input
//
// A node that names itself as parent is made a root and reported through the
// hook set with [WithRepairHook]. When no node is a root at all, one
// auxiliary root is synthesized per distinct parent id. Children of parents
// that are never reached by the walk are appended at level 0 after it.
//
// # Concurrency
//
// Build and Flatten mutate the caller's nodes in place and are not safe for
// concurrent use on the same nodes.
package hierarchy
