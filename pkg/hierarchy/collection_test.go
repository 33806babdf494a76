package hierarchy

import (
	"errors"
	"slices"
	"testing"

	errs "github.com/matzehuels/treepage/pkg/errors"
)

func TestNewCollection(t *testing.T) {
	c, err := NewCollection(nodes("A", "B:A", "C:A")...)
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if got := ids(c.Nodes()); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("Nodes() = %v, want [A B C]", got)
	}
}

func TestCollectionRejectsBadNodes(t *testing.T) {
	tests := []struct {
		name string
		in   []Node
		want error
	}{
		{"nil", []Node{nil}, ErrNilNode},
		{"empty id", []Node{NewRecord("", "")}, ErrInvalidNodeID},
		{"duplicate", nodes("A", "A"), ErrDuplicateNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCollection(tt.in...)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewCollection() error = %v, want %v", err, tt.want)
			}
			if !errs.Is(err, errs.ErrCodeInvalidNode) {
				t.Errorf("NewCollection() error code = %q, want %q", errs.GetCode(err), errs.ErrCodeInvalidNode)
			}
		})
	}
}

func TestCollectionAccess(t *testing.T) {
	c, _ := NewCollection(nodes("A", "B:A", "C:A")...)

	if n, ok := c.Get("B"); !ok || n.ID() != "B" {
		t.Errorf("Get(B) = %v, %v, want B, true", n, ok)
	}
	if _, ok := c.Get("Z"); ok {
		t.Error("Get(Z) should miss")
	}
	if !c.Has("C") || c.Has("Z") {
		t.Error("Has() mismatch")
	}

	if !c.Remove("B") {
		t.Fatal("Remove(B) = false, want true")
	}
	if c.Remove("B") {
		t.Error("second Remove(B) = true, want false")
	}
	if got := ids(c.Nodes()); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("Nodes() after Remove = %v, want [A C]", got)
	}
	if n, ok := c.Get("C"); !ok || n.ID() != "C" {
		t.Errorf("Get(C) after Remove = %v, %v", n, ok)
	}
}

func TestCollectionSet(t *testing.T) {
	c, _ := NewCollection(nodes("A", "B:A")...)

	repl := NewRecord("A", "")
	repl.Title = "replaced"
	if err := c.Set("A", repl); err != nil {
		t.Fatalf("Set(A) error = %v", err)
	}
	if n, _ := c.Get("A"); LabelOf(n) != "replaced" {
		t.Errorf("Get(A) label = %q, want replaced", LabelOf(n))
	}
	if got := ids(c.Nodes()); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Set should keep position, got %v", got)
	}

	if err := c.Set("C", NewRecord("C", "A")); err != nil {
		t.Fatalf("Set(C) error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	if err := c.Set("X", NewRecord("Y", "")); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("Set with mismatched key error = %v, want ErrInvalidNodeID", err)
	}
}

func TestCollectionAll(t *testing.T) {
	c, _ := NewCollection(nodes("A", "B", "C")...)
	var got []string
	for i, n := range c.All() {
		if i == 2 {
			break
		}
		got = append(got, n.ID())
	}
	if !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("All() = %v, want [A B]", got)
	}
}

func TestCollectionPagination(t *testing.T) {
	c, _ := NewCollection(nodes("A", "B:A", "C:A", "D:B")...)

	if err := c.SetPage(-1); !errs.Is(err, errs.ErrCodeInvalidPage) {
		t.Errorf("SetPage(-1) = %v, want %s", err, errs.ErrCodeInvalidPage)
	}
	if err := c.SetPerPage(-5); !errs.Is(err, errs.ErrCodeInvalidPerPage) {
		t.Errorf("SetPerPage(-5) = %v, want %s", err, errs.ErrCodeInvalidPerPage)
	}
	if c.Window() != (Window{}) {
		t.Errorf("rejected values must not be applied, got %+v", c.Window())
	}

	if err := c.SetPage(2); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPerPage(2); err != nil {
		t.Fatal(err)
	}
	p := c.Sort()
	if got, want := p.IDs(), []string{"A", "B", "D", "C"}; !slices.Equal(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}

	// Sorting again rebuilds the tree and gives the same page.
	if got := c.Sort().IDs(); !slices.Equal(got, p.IDs()) {
		t.Errorf("second Sort() = %v, want %v", got, p.IDs())
	}

	if err := c.SetWindow(Window{Page: -1}); !errs.IsValidation(err) {
		t.Errorf("SetWindow(-1) = %v, want ValidationError", err)
	}
}

func TestCollectionOnRepair(t *testing.T) {
	c, _ := NewCollection(nodes("X:X", "Y")...)
	var repaired []string
	c.OnRepair(func(n Node) { repaired = append(repaired, n.ID()) })

	p := c.Sort()
	if !slices.Equal(repaired, []string{"X"}) {
		t.Errorf("OnRepair saw %v, want [X]", repaired)
	}
	if got := p.Levels(); !slices.Equal(got, []int{0, 0}) {
		t.Errorf("Levels() = %v, want [0 0]", got)
	}
}

func TestMatch(t *testing.T) {
	in := nodes("apple", "banana:apple", "cherry")
	in[2].(*Record).Title = "Red Fruit"

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"apple", "banana", "cherry"}},
		{"AN", []string{"banana"}},
		{"red", []string{"cherry"}},
		{"  p ", []string{"apple"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		if got := ids(Match(in, tt.query)); !slices.Equal(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMatchThenSortAnchorsParents(t *testing.T) {
	c, _ := NewCollection(nodes("menu", "about:menu", "contact:menu")...)
	sub := Match(c.Nodes(), "o")

	p := Flatten(Build(sub), Window{})
	if got, want := p.IDs(), []string{"menu", "about", "contact"}; !slices.Equal(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	if !IsAuxiliary(p.Nodes[0]) {
		t.Error("menu should be an auxiliary anchor")
	}
}
