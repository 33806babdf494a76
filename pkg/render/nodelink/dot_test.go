package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/treepage/pkg/hierarchy"
)

func samplePage(w hierarchy.Window) hierarchy.Page {
	recs := []*hierarchy.Record{
		hierarchy.NewRecord("home", ""),
		hierarchy.NewRecord("about", "home"),
		hierarchy.NewRecord("team", "about"),
		hierarchy.NewRecord("contact", "home"),
	}
	recs[0].Meta["weight"] = 1
	hierarchy.NewIndex(recs)
	return hierarchy.Flatten(hierarchy.Build(hierarchy.Nodes(recs)), w)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(samplePage(hierarchy.Window{}), Options{})

	for _, want := range []string{
		`"home" [label="home"]`,
		`"home" -> "about";`,
		`"about" -> "team";`,
		`"home" -> "contact";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTOnlyLinksRecordsOnPage(t *testing.T) {
	// Page 2 of 2 holds team and contact, with home and about as context.
	dot := ToDOT(samplePage(hierarchy.Window{Page: 2, PerPage: 2}), Options{})
	if !strings.Contains(dot, `"home" [label="home", fillcolor=whitesmoke`) {
		t.Errorf("context node not greyed:\n%s", dot)
	}
	if !strings.Contains(dot, `"about" -> "team";`) {
		t.Errorf("missing edge about -> team:\n%s", dot)
	}

	dot = ToDOT(samplePage(hierarchy.Window{Page: 1, PerPage: 1}), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("single-node page should have no edges:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(samplePage(hierarchy.Window{}), Options{Detailed: true})
	if !strings.Contains(dot, `level: 0\nweight: 1`) {
		t.Errorf("detailed label missing metadata:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(samplePage(hierarchy.Window{}), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "team") {
		t.Errorf("RenderSVG() output does not look like the diagram")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %q, want %q", got, want)
	}
}
