package trace

import (
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/color"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/layout"
	"github.com/matzehuels/tikzbridge/pkg/texgen"
)

// anchorNames maps figure anchor keywords to TikZ compass directions.
// Centered anchors contribute nothing.
var anchorNames = map[string]string{
	"left":   "west",
	"right":  "east",
	"top":    "north",
	"bottom": "south",
	"middle": "",
	"center": "",
	"auto":   "",
	"":       "",
}

// Annotation converts a layout annotation into a \node command, resolving
// its position against the panel's coordinate frames. On a multi-panel
// canvas the resolved paper position is additionally transformed into the
// anchor panel's picture frame.
func Annotation(a figure.Annotation, ctx *Context) string {
	xf, yf := layout.FrameFromRef(a.XRef), layout.FrameFromRef(a.YRef)
	res := layout.Resolve(a.X, a.Y, xf, yf, ctx.XBounds, ctx.YBounds)

	coordSystem := texgen.CoordAxis
	x, y := res.X, res.Y
	if ctx.Geom.Multi() {
		if !res.FullyRelative {
			ctx.Sink.Warnf(component, "annotation %q uses data coordinates on a multi-panel canvas; its position may be inaccurate", a.Text)
		}
		x, y = ctx.Geom.ToCanvasFrame(x, y, res.FullyRelative, ctx.Sink)
		coordSystem = texgen.CoordPicture
	} else if res.FullyRelative {
		coordSystem = texgen.CoordRelative
	}

	var opts []string
	if anchor := nodeAnchor(a.YAnchor, a.XAnchor); anchor != "" {
		opts = append(opts, "anchor="+anchor)
	}
	if a.Font.Color != "" {
		opts = append(opts, "color="+color.Convert(a.Font.Color, ctx.Colors, ctx.Sink))
	}

	return texgen.TextNode(x, y, texgen.EscapeText(a.Text), strings.Join(opts, ", "), coordSystem)
}

// nodeAnchor combines vertical and horizontal anchors into one TikZ
// anchor name ("north west", "east", ...).
func nodeAnchor(yAnchor, xAnchor string) string {
	v := anchorNames[yAnchor]
	h := anchorNames[xAnchor]
	switch {
	case v != "" && h != "":
		return v + " " + h
	case v != "":
		return v
	default:
		return h
	}
}
