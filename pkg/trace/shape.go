package trace

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/color"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/options"
	"github.com/matzehuels/tikzbridge/pkg/texgen"
)

// Shape converts a layout shape into a \draw command. Lines and
// rectangles are supported; anything else is warned about and omitted.
func Shape(sh figure.Shape, ctx *Context) string {
	switch sh.Type {
	case "line":
		return shapeLine(sh, ctx)
	case "rect":
		return shapeRect(sh, ctx)
	}
	ctx.Sink.Warnf(component, "shape type %q is not supported; omitting it", sh.Type)
	return ""
}

func shapeLine(sh figure.Shape, ctx *Context) string {
	x0, x1 := options.FormatNumber(sh.X0), options.FormatNumber(sh.X1)
	y0, y1 := options.FormatNumber(sh.Y0), options.FormatNumber(sh.Y1)

	// A paper-spanning horizontal rule over a categorical axis should
	// cover the outermost bars too, so the span widens past the first and
	// last tick by one category step.
	if sh.XRef == "paper" && sh.X0 == 0 && sh.X1 == 1 {
		if lo, hi, ok := categorySpan(ctx.Panel.Options); ok {
			x0, x1 = options.FormatNumber(lo), options.FormatNumber(hi)
		} else {
			ctx.Sink.Warnf(component, "paper-spanning line on a non-categorical axis; drawing it across [0,1] data units")
		}
	}

	path := fmt.Sprintf("(axis cs:%s, %s) -- (axis cs:%s, %s)", x0, y0, x1, y1)
	return texgen.Draw(strings.Join(lineOptions(sh.Line, ctx), ", "), path)
}

func shapeRect(sh figure.Shape, ctx *Context) string {
	path := fmt.Sprintf("(axis cs:%s, %s) rectangle (axis cs:%s, %s)",
		options.FormatNumber(sh.X0), options.FormatNumber(sh.Y0),
		options.FormatNumber(sh.X1), options.FormatNumber(sh.Y1))
	return texgen.Draw(strings.Join(lineOptions(sh.Line, ctx), ", "), path)
}

// categorySpan derives a widened span from the panel's categorical tick
// positions: one category step beyond the first and last tick.
func categorySpan(store *options.Store) (lo, hi float64, ok bool) {
	v, found := store.Get("xtick")
	if !found {
		return 0, 0, false
	}
	list, isList := v.AsList()
	if !isList || len(list) < 2 {
		return 0, 0, false
	}
	ticks := make([]float64, 0, len(list))
	for _, e := range list {
		n, isNum := e.AsNumber()
		if !isNum {
			return 0, 0, false
		}
		ticks = append(ticks, n)
	}
	first, last := ticks[0], ticks[len(ticks)-1]
	stepLo := ticks[1] - ticks[0]
	stepHi := ticks[len(ticks)-1] - ticks[len(ticks)-2]
	if stepLo < 1 {
		stepLo = 1
	}
	if stepHi < 1 {
		stepHi = 1
	}
	return first - stepLo, last + stepHi, true
}

// lineOptions renders shared line styling. Dashed shapes default to thick
// strokes so single-pixel rules stay visible.
func lineOptions(line figure.LineSpec, ctx *Context) []string {
	var opts []string
	if line.Color != "" {
		opts = append(opts, color.Convert(line.Color, ctx.Colors, ctx.Sink))
	}
	if line.Dash != "" {
		opts = append(opts, DashStyle(line.Dash, ctx.Sink))
	}
	if line.Width > 0 {
		opts = append(opts, "line width="+PxToPt(line.Width))
	} else {
		opts = append(opts, "thick")
	}
	return opts
}
