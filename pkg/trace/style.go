// Package trace converts individual data series, shapes and annotations
// into pgfplots commands, mutating the owning panel's option store as it
// goes.
//
// Each converter keeps the same contract: recoverable problems are warned
// about and degrade to a documented default, unsupported elements are
// omitted, and nothing here aborts a render.
package trace

import (
	"fmt"
	"math"

	"github.com/matzehuels/tikzbridge/pkg/color"
	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/layout"
	"github.com/matzehuels/tikzbridge/pkg/panel"
)

// Context carries the shared mutable state every converter needs: the
// target panel, the figure-wide color side-table, the diagnostics sink
// and the panel grid geometry.
type Context struct {
	Panel  *panel.Panel
	Colors *color.Set
	Sink   *diag.Sink
	Geom   layout.Geometry

	// Resolved axis bounds for the owning panel, used when rewriting
	// relative coordinates. Unknown bounds defer to symbolic references.
	XBounds, YBounds layout.Bounds
}

// markerSymbols maps figure marker symbols to pgfplots mark names.
// Unknown symbols fall back to "*".
var markerSymbols = map[string]string{
	"circle":         "o",
	"square":         "square",
	"diamond":        "diamond",
	"cross":          "+",
	"x":              "x",
	"triangle-up":    "triangle",
	"triangle-down":  "triangle",
	"triangle-left":  "triangle",
	"triangle-right": "triangle",
	"triangle-ne":    "triangle",
	"triangle-se":    "triangle",
	"triangle-sw":    "triangle",
	"triangle-nw":    "triangle",
}

// MarkerSymbol returns the pgfplots mark for a figure marker symbol.
func MarkerSymbol(symbol string) string {
	if m, ok := markerSymbols[symbol]; ok {
		return m
	}
	return "*"
}

// dashStyles maps figure dash names to pgfplots dash pattern options.
var dashStyles = map[string]string{
	"solid":    "solid",
	"dot":      "densely dotted",
	"dash":     "densely dashed",
	"longdash": "dashed",
	"dashdot":  "densely dashdotted",
}

// DashStyle returns the pgfplots dash option for a figure dash name,
// defaulting to solid with a warning for unknown names.
func DashStyle(dash string, sink *diag.Sink) string {
	if d, ok := dashStyles[dash]; ok {
		return d
	}
	sink.Warnf("trace", "line dash %q is not supported; defaulting to solid", dash)
	return "solid"
}

// PxToPt converts a pixel length to typesetting points (1px = 0.75pt).
func PxToPt(px float64) string {
	pt := px * 0.75
	if pt == math.Trunc(pt) {
		return fmt.Sprintf("%gpt", pt)
	}
	return fmt.Sprintf("%.2fpt", pt)
}

// latexFontSizes maps LaTeX size commands to their maximum point size,
// in increasing order.
var latexFontSizes = []struct {
	Name string
	Max  float64
}{
	{"tiny", 6},
	{"scriptsize", 8},
	{"footnotesize", 10},
	{"small", 11},
	{"normalsize", 12},
	{"large", 14},
	{"Large", 17},
	{"LARGE", 20},
	{"huge", 25},
	{"Huge", 30},
}

// defaultFontPt is the assumed tick label font size when none is set.
const defaultFontPt = 12

// LatexFontSize returns the LaTeX size command closest to a point size.
func LatexFontSize(pt float64) string {
	for _, s := range latexFontSizes {
		if pt <= s.Max {
			return "\\" + s.Name
		}
	}
	return "\\Huge"
}
