package trace

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/mesh"
	"github.com/matzehuels/tikzbridge/pkg/options"
	"github.com/matzehuels/tikzbridge/pkg/texgen"
)

// Heatmap converts a heatmap trace into a flat-shaded surface plot over
// the trace's rasterized vertex mesh, and configures the owning panel as
// a top-down color-mapped view.
func Heatmap(tr figure.Trace, ctx *Context) string {
	m := mesh.Rasterize(tr.ZMatrix())
	if m.Empty() {
		ctx.Sink.Warnf(component, "heatmap %q has no cells; omitting its surface", tr.Name)
		return ""
	}

	store := ctx.Panel.Options
	store.Set("view", options.Paired(options.Number(0), options.Number(90)))
	store.Merge("colormap/viridis", options.Flag(), options.KeepExisting)
	store.Set("colorbar", options.Flag())

	if min, max, ok := valueRange(m); ok {
		store.Merge("point meta min", options.Number(min), options.KeepExisting)
		store.Merge("point meta max", options.Number(max), options.KeepExisting)
	}

	// The mesh spans [0, C] x [0, R]; pin the axis box to it so skirt
	// columns are not clipped. User-supplied ranges win.
	store.Merge("xmin", options.Number(0), options.KeepExisting)
	store.Merge("xmax", options.Number(float64(m.SourceCols)), options.KeepExisting)
	store.Merge("ymin", options.Number(0), options.KeepExisting)
	store.Merge("ymax", options.Number(float64(m.SourceRows)), options.KeepExisting)

	// Heatmap rows read top-down while the mesh grows bottom-up.
	store.Merge("y dir", options.Text("reverse"), options.KeepExisting)

	categoryTicks(store, "x", tr.X, m.SourceCols, ctx)
	categoryTicks(store, "y", tr.Y, m.SourceRows, ctx)

	opts := fmt.Sprintf("surf, shader=flat corner, mesh/rows=%d, mesh/cols=%d", m.Rows(), m.Cols())
	var b strings.Builder
	b.WriteString(texgen.AddPlot3(m.Block(), "table", opts, true))
	if tr.Name != "" && tr.LegendVisible() {
		b.WriteString(texgen.LegendEntry(texgen.EscapeText(tr.Name), ""))
	}
	return b.String()
}

// valueRange returns the finite min and max over the mesh values.
func valueRange(m mesh.Mesh) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range m.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max, min <= max
}

// categoryTicks places one tick at each cell center with the trace's
// category labels, when the label count matches the matrix. Long x labels
// are rotated so neighbours do not overlap.
func categoryTicks(store *options.Store, axis string, labels []figure.Datum, cells int, ctx *Context) {
	if len(labels) == 0 {
		return
	}
	if len(labels) != cells {
		ctx.Sink.Warnf(component, "heatmap %s labels (%d) do not match the matrix (%d cells); ignoring them", axis, len(labels), cells)
		return
	}
	ticks := make([]options.Value, cells)
	names := make([]options.Value, cells)
	maxLen := 0
	for i, d := range labels {
		ticks[i] = options.Number(float64(i) + 0.5)
		t := texgen.EscapeText(d.String())
		names[i] = options.Text(t)
		if len(t) > maxLen {
			maxLen = len(t)
		}
	}
	store.Set(axis+"tick", options.List(ticks...))
	store.Set(axis+"ticklabels", options.List(names...))

	if axis == "x" {
		perLabelPt := ctx.Geom.PanelWidth * 0.75 / float64(cells)
		if float64(maxLen)*glyphWidthPt > perLabelPt {
			rot := options.Number(-30)
			if perLabelPt < 4*defaultFontPt {
				rot = options.Number(-90)
			}
			store.Merge("x tick label style", options.MapOf(map[string]options.Value{
				"rotate": rot,
				"right":  options.Flag(),
			}), options.PreferExisting)
		}
	}
}
