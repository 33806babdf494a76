package hierarchy_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treepage/pkg/hierarchy"
)

// menu returns a small navigation tree stored as flat rows.
func menu() []hierarchy.Node {
	recs := []*hierarchy.Record{
		hierarchy.NewRecord("home", ""),
		hierarchy.NewRecord("about", "home"),
		hierarchy.NewRecord("contact", "home"),
		hierarchy.NewRecord("team", "about"),
	}
	hierarchy.NewIndex(recs)
	out := make([]hierarchy.Node, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}

func ExampleFlatten() {
	page := hierarchy.Flatten(hierarchy.Build(menu()), hierarchy.Window{})
	for _, n := range page.Nodes {
		fmt.Println(strings.Repeat("  ", n.Level()) + n.ID())
	}
	// Output:
	// home
	//   about
	//     team
	//   contact
}

func ExampleFlatten_paged() {
	// The second page opens on "team", so its ancestors come first.
	w, _ := hierarchy.NewWindow(2, 2)
	page := hierarchy.Flatten(hierarchy.Build(menu()), w)
	fmt.Println(page.IDs(), page.Levels())
	fmt.Println("ancestors:", page.Ancestors)
	// Output:
	// [home about team contact] [0 1 2 1]
	// ancestors: 2
}

func ExampleCollection() {
	c, err := hierarchy.NewCollection(menu()...)
	if err != nil {
		panic(err)
	}
	_ = c.SetPage(1)
	_ = c.SetPerPage(3)

	for _, ch := range hierarchy.Choices(c.Sort().Nodes) {
		group := "-"
		if ch.Group != nil {
			group = ch.Group.Value
		}
		fmt.Println(ch.Value, ch.Level, group)
	}
	// Output:
	// home 0 -
	// about 1 home
	// team 2 about
}

func ExampleParseWindow() {
	_, err := hierarchy.ParseWindow("two", "10")
	fmt.Println(err)
	// Output:
	// INVALID_PAGE: page needs to be numeric (got "two")
}
