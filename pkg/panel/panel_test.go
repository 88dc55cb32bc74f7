package panel

import (
	"testing"

	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/layout"
)

func TestPartitionSingle(t *testing.T) {
	fig := &figure.Figure{
		Data: []figure.Trace{{Type: "scatter"}},
		Layout: figure.Layout{
			Title: figure.Title{Text: "Solo"},
		},
	}
	sink := diag.New()

	panels, geom, err := Partition(fig, sink)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(panels) != 1 {
		t.Fatalf("got %d panels, want 1", len(panels))
	}
	if geom.Multi() {
		t.Error("single panel reported as multi")
	}
	if geom.PanelWidth != DefaultWidth || geom.PanelHeight != DefaultHeight {
		t.Errorf("default sizing = %gx%g, want %gx%g", geom.PanelWidth, geom.PanelHeight, DefaultWidth, DefaultHeight)
	}
	if panels[0].Title != "Solo" {
		t.Errorf("single panel should take the figure title, got %q", panels[0].Title)
	}
}

func TestPartitionDeclaredGrid(t *testing.T) {
	fig := &figure.Figure{
		Data: []figure.Trace{
			{Type: "scatter", XAxisRef: "x"},
			{Type: "scatter", XAxisRef: "x2"},
			{Type: "scatter", XAxisRef: "x3"},
			{Type: "scatter", XAxisRef: "x4"},
			{Type: "scatter", XAxisRef: "x2"}, // second trace on panel 1
		},
		Layout: figure.Layout{
			Title:  figure.Title{Text: "Grid"},
			Width:  800,
			Height: 600,
			Grid:   &figure.GridSpec{Rows: 2, Columns: 2},
		},
	}
	sink := diag.New()

	panels, geom, err := Partition(fig, sink)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(panels) != 4 {
		t.Fatalf("got %d panels, want 4", len(panels))
	}
	if geom.Rows != 2 || geom.Cols != 2 {
		t.Errorf("geometry %dx%d, want 2x2", geom.Rows, geom.Cols)
	}
	if len(panels[1].Traces) != 2 {
		t.Errorf("panel 1 has %d traces, want 2", len(panels[1].Traces))
	}
	if panels[0].Title != "" {
		t.Error("multi-panel layout must not seed a panel title from the figure title")
	}
}

func TestPartitionAnchorsWithoutGrid(t *testing.T) {
	fig := &figure.Figure{
		Data: []figure.Trace{
			{Type: "scatter", XAxisRef: "x"},
			{Type: "scatter", XAxisRef: "x3"},
		},
	}
	sink := diag.New()

	panels, geom, err := Partition(fig, sink)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(panels) != 3 || geom.Cols != 3 || geom.Rows != 1 {
		t.Fatalf("fallback shape: %d panels, %dx%d grid; want 3 panels in 1x3", len(panels), geom.Rows, geom.Cols)
	}
	if sink.Len() == 0 {
		t.Error("1xN fallback must warn")
	}
	if !panels[1].Empty() {
		t.Error("panel 1 should be empty")
	}
}

func TestPartitionMarginFallback(t *testing.T) {
	fig := &figure.Figure{
		Data: []figure.Trace{{Type: "scatter"}},
		Layout: figure.Layout{
			Width:  100,
			Height: 100,
			Margin: figure.Margin{L: 80, R: 80},
		},
	}
	sink := diag.New()

	_, geom, err := Partition(fig, sink)
	if err != nil {
		t.Fatalf("margins that leave no room must degrade, not fail: %v", err)
	}
	if geom.PanelWidth != 100 {
		t.Errorf("fallback panel width = %g, want 100", geom.PanelWidth)
	}
	if sink.Len() == 0 {
		t.Error("margin fallback must warn")
	}
}

func TestPartitionInvalidGeometry(t *testing.T) {
	fig := &figure.Figure{
		Data:   []figure.Trace{{Type: "scatter"}},
		Layout: figure.Layout{Grid: &figure.GridSpec{Rows: 0, Columns: 0}},
	}
	if _, _, err := Partition(fig, diag.New()); err == nil {
		t.Fatal("zero-sized grid must be fatal")
	}
}

func TestAnchorIndex(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"", 0},
		{"x", 0},
		{"y", 0},
		{"x2", 1},
		{"x10", 9},
		{"x0", 0}, // malformed, clamps to first panel
	}
	for _, tt := range tests {
		if got := anchorIndex(tt.ref); got != tt.want {
			t.Errorf("anchorIndex(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

// titleAnnotations builds paper-anchored annotations at the given
// positions.
func titleAnnotations(pts [][3]interface{}) []figure.Annotation {
	var anns []figure.Annotation
	for _, p := range pts {
		anns = append(anns, figure.Annotation{
			Text: p[0].(string),
			X:    p[1].(float64),
			Y:    p[2].(float64),
			XRef: "paper",
			YRef: "paper",
		})
	}
	return anns
}

func TestInferTitlesTwoByThree(t *testing.T) {
	geom := layout.NewGeometry(2, 3, 6, 100, 100, 0, 0, 0, 0)
	panels := make([]*Panel, 6)
	sink := diag.New()
	for i := range panels {
		panels[i] = New(i, sink)
	}

	anns := titleAnnotations([][3]interface{}{
		{"A", 0.15, 0.8}, {"B", 0.5, 0.8}, {"C", 0.85, 0.8},
		{"D", 0.15, 0.3}, {"E", 0.5, 0.3}, {"F", 0.85, 0.3},
	})

	consumed := InferTitles(panels, geom, anns, sink)
	if len(consumed) != 6 {
		t.Fatalf("consumed %d annotations, want 6", len(consumed))
	}
	want := []string{"A", "B", "C", "D", "E", "F"}
	for i, w := range want {
		if panels[i].Title != w {
			t.Errorf("panel %d title = %q, want %q", i, panels[i].Title, w)
		}
	}
	if sink.Len() != 0 {
		t.Errorf("clean inference warned: %v", sink.Warnings())
	}
}

func TestInferTitlesSkipsSinglePanel(t *testing.T) {
	geom := layout.NewGeometry(1, 1, 1, 100, 100, 0, 0, 0, 0)
	p := New(0, diag.New())
	anns := titleAnnotations([][3]interface{}{{"A", 0.5, 0.9}})

	if consumed := InferTitles([]*Panel{p}, geom, anns, diag.New()); consumed != nil {
		t.Error("single-panel canvas must not consume annotations")
	}
	if p.Title != "" {
		t.Error("single-panel title must not be inferred")
	}
}

func TestInferTitlesIgnoresDataAnchored(t *testing.T) {
	geom := layout.NewGeometry(1, 2, 2, 100, 100, 0, 0, 0, 0)
	sink := diag.New()
	panels := []*Panel{New(0, sink), New(1, sink)}

	anns := []figure.Annotation{
		{Text: "data", X: 3, Y: 4, XRef: "x", YRef: "y"},
	}
	if consumed := InferTitles(panels, geom, anns, sink); len(consumed) != 0 {
		t.Error("data-anchored annotations must never become titles")
	}
}

func TestInferTitlesNoGridKeepsText(t *testing.T) {
	geom := layout.NewGeometry(2, 2, 4, 100, 100, 0, 0, 0, 0)
	sink := diag.New()
	panels := []*Panel{New(0, sink), New(1, sink), New(2, sink), New(3, sink)}

	// A single point cannot fill two columns, so neither the full search
	// nor the first-row fallback matches.
	anns := titleAnnotations([][3]interface{}{{"a", 0.5, 0.95}})

	if consumed := InferTitles(panels, geom, anns, sink); len(consumed) != 0 {
		t.Error("unmatchable annotations must not be consumed")
	}
	for _, p := range panels {
		if p.Title != "" {
			t.Errorf("panel %d acquired a title from non-grid annotations", p.Index)
		}
	}
	if sink.Len() == 0 {
		t.Error("failed title search must warn")
	}
}

func TestInferTitlesPartialGrid(t *testing.T) {
	geom := layout.NewGeometry(1, 2, 2, 100, 100, 0, 0, 0, 0)
	sink := diag.New()
	panels := []*Panel{New(0, sink), New(1, sink)}

	// Only the left title exists; the hole shows up as a warning but the
	// matched cell is still assigned.
	anns := titleAnnotations([][3]interface{}{
		{"L", 0.2, 0.9}, {"stray", 0.7, 0.1},
	})

	consumed := InferTitles(panels, geom, anns, sink)
	if panels[0].Title != "L" {
		t.Errorf("panel 0 title = %q, want L", panels[0].Title)
	}
	if len(consumed) == 0 {
		t.Error("matched annotation was not consumed")
	}
	if sink.Len() == 0 {
		t.Error("imperfect grid must surface its warnings")
	}
}
