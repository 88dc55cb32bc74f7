package trace

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/color"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/options"
	"github.com/matzehuels/tikzbridge/pkg/texgen"
)

// barAxes names the orientation-dependent option keys: vertical bars put
// categories on x, horizontal bars on y. Everything downstream is written
// against the categorical/numeric distinction, not against x/y.
type barAxes struct {
	plotKey string // ybar or xbar

	catTick       string
	catTickLabels string
	catLabelStyle string
	catSize       string // axis dimension holding the categories

	numGrids string
	numSize  string
}

func axesFor(orientation string) barAxes {
	if orientation == "h" {
		return barAxes{
			plotKey:       "xbar",
			catTick:       "ytick",
			catTickLabels: "yticklabels",
			catLabelStyle: "y tick label style",
			catSize:       "height",
			numGrids:      "xmajorgrids",
			numSize:       "width",
		}
	}
	return barAxes{
		plotKey:       "ybar",
		catTick:       "xtick",
		catTickLabels: "xticklabels",
		catLabelStyle: "x tick label style",
		catSize:       "width",
		numGrids:      "ymajorgrids",
		numSize:       "height",
	}
}

// barDisplayDefaults is the clean-axis styling applied to bar panels.
// Every entry merges with KeepExisting so user options always win.
var barDisplayDefaults = []struct {
	key string
	val func() options.Value
}{
	{"xtick style", func() options.Value {
		return options.MapOf(map[string]options.Value{"draw": options.Text("none")})
	}},
	{"ytick style", func() options.Value {
		return options.MapOf(map[string]options.Value{"draw": options.Text("none")})
	}},
	{"tick align", func() options.Value { return options.Text("outside") }},
	{"axis line style", func() options.Value {
		return options.MapOf(map[string]options.Value{"draw": options.Text("none")})
	}},
	{"major tick length", func() options.Value { return options.Number(0) }},
}

// Bar converts a bar trace into an \addplot command and registers the
// categorical tick machinery on the owning panel.
func Bar(tr figure.Trace, ctx *Context) string {
	ax := axesFor(tr.Orientation)

	cat, num := tr.X, tr.Y
	if tr.Orientation == "h" {
		cat, num = tr.Y, tr.X
	}
	cat, num = pairSeries(cat, num, ctx.Sink)
	inspectData(cat, ctx.Sink)

	store := ctx.Panel.Options
	for _, d := range barDisplayDefaults {
		store.Merge(d.key, d.val(), options.KeepExisting)
	}
	store.Merge(ax.numGrids, options.Flag(), options.KeepExisting)
	store.Merge("bar width", options.Text("0.75"), options.KeepExisting)

	// Map each category to a tick index, reusing indices for categories
	// already registered by earlier bar traces on this panel.
	positions := make([]figure.Datum, len(cat))
	for i, c := range cat {
		label := texgen.EscapeText(c.String())
		positions[i] = figure.NumberDatum(float64(tickIndex(store, ax, label)))
	}
	styleCategoryLabels(store, ax, ctx)

	var opts []string
	opts = append(opts, ax.plotKey)
	if tr.Marker.Color != "" {
		opts = append(opts, "fill="+color.Convert(tr.Marker.Color, ctx.Colors, ctx.Sink))
	}
	opts = append(opts, "draw=none")

	errBar := tr.ErrorY
	if tr.Orientation == "h" {
		errBar = tr.ErrorX
	}
	var body string
	if errBar != nil && len(errBar.Array) > 0 {
		dir := "y"
		if tr.Orientation == "h" {
			dir = "x"
		}
		opts = append(opts, fmt.Sprintf("error bars/.cd, %s dir=both, %s explicit", dir, dir))
		body = coordsWithErrors(positions, num, errBar, tr.Orientation)
	} else {
		body = coords(positions, num, tr.Orientation)
	}

	var b strings.Builder
	b.WriteString(texgen.AddPlot(body, "coordinates", strings.Join(opts, ", "), true))
	if tr.Name != "" && tr.LegendVisible() {
		b.WriteString(texgen.LegendEntry(texgen.EscapeText(tr.Name), ""))
	}
	return b.String()
}

// tickIndex returns the tick position for label, appending a new tick if
// the label is unseen. Tick positions and labels grow in lockstep.
func tickIndex(store *options.Store, ax barAxes, label string) int {
	if existing, ok := store.Get(ax.catTickLabels); ok {
		if list, ok := existing.AsList(); ok {
			for i, v := range list {
				if t, ok := v.AsText(); ok && t == label {
					return i
				}
			}
			store.AppendToList(ax.catTickLabels, options.Text(label))
			store.AppendToList(ax.catTick, options.Number(float64(len(list))))
			return len(list)
		}
	}
	store.AppendToList(ax.catTickLabels, options.Text(label))
	store.AppendToList(ax.catTick, options.Number(0))
	return 0
}

// Estimated glyph width in points per character of tick label text, for
// the overflow heuristic.
const glyphWidthPt = 5.0

// styleCategoryLabels shrinks or rotates categorical tick labels when
// their estimated width exceeds the room one category gets on the axis.
// User-supplied style entries always win over the computed ones.
func styleCategoryLabels(store *options.Store, ax barAxes, ctx *Context) {
	labels, ok := store.Get(ax.catTickLabels)
	if !ok {
		return
	}
	list, ok := labels.AsList()
	if !ok || len(list) == 0 {
		return
	}

	catSpan := ctx.Geom.PanelWidth
	if ax.catSize == "height" {
		catSpan = ctx.Geom.PanelHeight
	}
	perLabelPt := catSpan * 0.75 / float64(len(list))

	maxLen := 0
	for _, v := range list {
		if t, ok := v.AsText(); ok && len(t) > maxLen {
			maxLen = len(t)
		}
	}
	widthPt := float64(maxLen) * glyphWidthPt
	if widthPt <= perLabelPt {
		return
	}

	style := map[string]options.Value{}
	if widthPt*0.6 <= perLabelPt {
		style["font"] = options.Text("\\tiny")
	} else {
		style["rotate"] = options.Number(-30)
		style["anchor"] = options.Text("west")
		if ax.plotKey == "ybar" {
			style["anchor"] = options.Text("north west")
		}
	}
	store.Merge(ax.catLabelStyle, options.MapOf(style), options.PreferExisting)
}

// coords renders (category index, value) pairs, swapped for horizontal
// bars.
func coords(positions, values []figure.Datum, orientation string) string {
	var b strings.Builder
	for i := range positions {
		x, y := positions[i], values[i]
		if orientation == "h" {
			x, y = y, x
		}
		fmt.Fprintf(&b, "(%s,%s)\n", x.String(), y.String())
	}
	return b.String()
}

// coordsWithErrors renders coordinate pairs with explicit error offsets.
func coordsWithErrors(positions, values []figure.Datum, e *figure.ErrorBar, orientation string) string {
	var b strings.Builder
	for i := range positions {
		var ev float64
		if i < len(e.Array) {
			ev = e.Array[i]
		}
		x, y := positions[i].String(), values[i].String()
		ex, ey := "0", options.FormatNumber(ev)
		if orientation == "h" {
			x, y = y, x
			ex, ey = ey, ex
		}
		fmt.Fprintf(&b, "(%s,%s) +- (%s,%s)\n", x, y, ex, ey)
	}
	return b.String()
}
