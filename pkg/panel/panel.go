// Package panel partitions a figure's trace list into logical panels and
// owns the per-panel option state mutated by every layout pass.
//
// A panel is one chart area with its own coordinate system, part of a
// (possibly 1x1) grid sharing one canvas. Panels are created once when the
// trace list is partitioned, mutated by every trace, annotation and the
// title-inference pass, and never removed; an empty panel is rendered
// hidden rather than dropped.
package panel

import (
	"math"
	"strconv"

	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/layout"
	"github.com/matzehuels/tikzbridge/pkg/options"
)

const component = "panel"

// Default figure dimensions in pixels, applied when the layout declares
// none.
const (
	DefaultWidth  = 700.0
	DefaultHeight = 450.0
)

// Panel is one logical chart area: its option store plus the title and
// axis labels contributed by the layout and the title-inference pass.
type Panel struct {
	Index   int
	Title   string
	XLabel  string
	YLabel  string
	Options *options.Store

	// Traces assigned to this panel, in figure order.
	Traces []figure.Trace
}

// New creates an empty panel reporting to sink.
func New(index int, sink *diag.Sink) *Panel {
	return &Panel{Index: index, Options: options.NewStore(sink)}
}

// Empty reports whether no trace was assigned to the panel.
func (p *Panel) Empty() bool { return len(p.Traces) == 0 }

// Partition splits the figure's traces into panels and derives the panel
// grid geometry. Traces are assigned by their axis anchor ("x", "x2", ...);
// panels are created in anchor order, filling the declared grid row-major.
// Returns the panels, the geometry, and a fatal error only for malformed
// geometry.
func Partition(fig *figure.Figure, sink *diag.Sink) ([]*Panel, layout.Geometry, error) {
	rows, cols := 1, 1
	if fig.Layout.Grid != nil {
		rows, cols = fig.Layout.Grid.Rows, fig.Layout.Grid.Columns
	}

	count := 1
	for _, tr := range fig.Data {
		if idx := anchorIndex(tr.XAxisRef); idx+1 > count {
			count = idx + 1
		}
	}
	if fig.Layout.Grid == nil && count > 1 {
		// No grid declared but several anchors used: lay the panels out
		// in a single row.
		cols = count
		sink.Warnf(component, "%d axis anchors without a declared grid; assuming a 1x%d layout", count, count)
	}
	if rows*cols < count {
		sink.Warnf(component, "%d panels exceed the declared %dx%d grid; extra panels share the last cell", count, rows, cols)
		count = rows * cols
	}

	width := fig.Layout.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := fig.Layout.Height
	if height <= 0 {
		height = DefaultHeight
	}
	m := fig.Layout.Margin

	panelW := width/float64(cols) - m.L - m.R
	if panelW <= 0 {
		sink.Warnf(component, "margins leave no horizontal room for panels; ignoring them for sizing")
		panelW = width / float64(cols)
	}
	panelH := height/float64(rows) - m.T - m.B
	if panelH <= 0 {
		sink.Warnf(component, "margins leave no vertical room for panels; ignoring them for sizing")
		panelH = height / float64(rows)
	}

	geom := layout.NewGeometry(rows, cols, count, panelW, panelH, m.L, m.R, m.T, m.B)
	if err := geom.Validate(); err != nil {
		return nil, layout.Geometry{}, err
	}

	panels := make([]*Panel, count)
	for i := range panels {
		panels[i] = New(i, sink)
		panels[i].XLabel = fig.Layout.XAxis.Title.Text
		panels[i].YLabel = fig.Layout.YAxis.Title.Text
	}
	if !geom.Multi() {
		panels[0].Title = fig.Layout.Title.Text
	}

	for _, tr := range fig.Data {
		idx := anchorIndex(tr.XAxisRef)
		if idx >= count {
			idx = count - 1
		}
		panels[idx].Traces = append(panels[idx].Traces, tr)
	}
	return panels, geom, nil
}

// anchorIndex maps an axis anchor reference to a panel index: "" and "x"
// are panel 0, "x2" is panel 1, and so on.
func anchorIndex(ref string) int {
	if ref == "" || ref == "x" || ref == "y" {
		return 0
	}
	n, err := strconv.Atoi(ref[1:])
	if err != nil || n < 1 {
		return 0
	}
	return n - 1
}

// coordPrecision rounds annotation coordinates before grid matching, so
// float noise does not break row/column equality.
const coordPrecision = 1e6

func roundCoord(v float64) float64 {
	return math.Round(v*coordPrecision) / coordPrecision
}

// InferTitles decides whether free-floating paper-anchored annotations
// should be reinterpreted as panel titles. It runs once, strictly after
// all per-panel and per-trace option mutations, since it consumes
// finalized panel positions.
//
// Matched annotations are assigned as titles in row-major panel order and
// reported in the returned set (keyed by annotation index) so the caller
// can skip rendering them as text nodes. Search warnings land in sink.
func InferTitles(panels []*Panel, geom layout.Geometry, anns []figure.Annotation, sink *diag.Sink) map[int]bool {
	if !geom.Multi() || len(anns) == 0 {
		return nil
	}

	byPoint := map[layout.Point][]int{}
	var points []layout.Point
	for i, a := range anns {
		if layout.FrameFromRef(a.XRef) != layout.FrameRelative || layout.FrameFromRef(a.YRef) != layout.FrameRelative {
			continue
		}
		p := layout.Point{Label: a.Text, X: roundCoord(a.X), Y: roundCoord(a.Y)}
		if len(byPoint[p]) == 0 {
			points = append(points, p)
		}
		byPoint[p] = append(byPoint[p], i)
	}
	if len(points) == 0 {
		return nil
	}

	match, ok := layout.BestGrid(points, geom.Rows, geom.Cols, geom.NumPanels)
	if !ok {
		sink.Warnf(component, "no title grid found for %d annotations; keeping them as text", len(points))
		return nil
	}
	for _, w := range match.Warnings {
		sink.Warnf("subgrid", "title grid: %s", w)
	}
	if match.FirstRowOnly {
		sink.Warnf(component, "only the first panel row matched title positions; lower panels keep no title")
	}

	consumed := map[int]bool{}
	expected := geom.NumPanels
	for r := 0; r < match.Grid.Rows; r++ {
		for c := 0; c < match.Grid.Cols; c++ {
			pts := match.Grid.Cell(r, c)
			if len(pts) == 0 {
				continue
			}
			idx := r*geom.Cols + c
			if idx >= expected || idx >= len(panels) {
				continue // stray cell: stays a plain annotation
			}
			// Ambiguous cells already warned; last one wins.
			panels[idx].Title = pts[len(pts)-1].Label
			for _, p := range pts {
				for _, ai := range byPoint[p] {
					consumed[ai] = true
				}
			}
		}
	}
	return consumed
}
