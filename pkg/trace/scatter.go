package trace

import (
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/color"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/texgen"
)

// Scatter converts a scatter trace into an \addplot command. The mode
// field selects line, marker or combined rendering; styling comes from the
// trace's line and marker blocks.
func Scatter(tr figure.Trace, ctx *Context) string {
	x, y := pairSeries(tr.X, tr.Y, ctx.Sink)
	inspectData(x, ctx.Sink)

	var opts []string
	opts = append(opts, modeOptions(tr)...)

	if tr.Line.Color != "" {
		opts = append(opts, "color="+color.Convert(tr.Line.Color, ctx.Colors, ctx.Sink))
	}
	if tr.Line.Width > 0 {
		opts = append(opts, "line width="+PxToPt(tr.Line.Width))
	}
	if tr.Line.Dash != "" {
		if d := DashStyle(tr.Line.Dash, ctx.Sink); d != "solid" {
			opts = append(opts, d)
		}
	}
	if tr.Marker.Size > 0 && showsMarkers(tr.Mode) {
		opts = append(opts, "mark size="+PxToPt(tr.Marker.Size/2))
	}
	if tr.Marker.Color != "" && showsMarkers(tr.Mode) {
		opts = append(opts, "mark options={solid, fill="+color.Convert(tr.Marker.Color, ctx.Colors, ctx.Sink)+"}")
	}

	var b strings.Builder
	b.WriteString(texgen.AddPlot(dataTable(x, y), "table", strings.Join(opts, ", "), false))
	if tr.Name != "" && tr.LegendVisible() {
		b.WriteString(texgen.LegendEntry(texgen.EscapeText(tr.Name), ""))
	}
	return b.String()
}

// modeOptions maps the trace mode to mark/line options. An empty mode
// keeps the pgfplots cycle-list defaults.
func modeOptions(tr figure.Trace) []string {
	switch {
	case tr.Mode == "markers":
		return []string{"only marks", "mark=" + MarkerSymbol(tr.Marker.Symbol)}
	case tr.Mode == "lines":
		return []string{"no markers"}
	case strings.Contains(tr.Mode, "markers"):
		return []string{"mark=" + MarkerSymbol(tr.Marker.Symbol)}
	}
	return nil
}

func showsMarkers(mode string) bool {
	return mode == "" || strings.Contains(mode, "markers")
}
