// Package layout resolves partially-specified positional information into
// exact output coordinates.
//
// The engine deals with three reference systems: paper fractions (0..1 of a
// panel's extent), axis data units, and raw pixels. Every position carries
// its frame explicitly; a bare number is never interpreted without one.
// This package provides the frame conversions ([Resolve]), the multi-panel
// canvas transform ([Geometry.ToCanvasFrame]) and the subgrid/title search
// ([FindSubgrids]).
package layout

import "fmt"

// Frame identifies the reference system a coordinate component lives in.
type Frame int

// Coordinate frames.
const (
	FrameRelative Frame = iota // fraction of the axis extent, 0..1
	FrameAbsolute              // axis data units
	FramePixel                 // raw pixels
)

func (f Frame) String() string {
	switch f {
	case FrameRelative:
		return "relative"
	case FrameAbsolute:
		return "absolute"
	case FramePixel:
		return "pixel"
	}
	return "unknown"
}

// FrameFromRef maps a figure reference string ("paper", "x", "y", "pixel")
// to a Frame. Axis references resolve to the absolute frame.
func FrameFromRef(ref string) Frame {
	switch ref {
	case "paper":
		return FrameRelative
	case "pixel":
		return FramePixel
	default:
		return FrameAbsolute
	}
}

// Bounds holds an axis's resolved min/max. Known is false when the bounds
// are decided later by other traces sharing the axis; the resolver then
// emits symbolic references instead of numbers.
type Bounds struct {
	Min, Max float64
	Known    bool
}

// Resolved is the output of a coordinate resolution: two textual
// coordinate expressions ready for markup interpolation, plus whether the
// pair stayed fully relative.
type Resolved struct {
	X, Y          string
	FullyRelative bool
}

// Resolve converts an (x, y) position into output coordinate expressions.
//
// If both frames are relative the values pass through unchanged and
// FullyRelative is true. Otherwise each relative component is rewritten to
// the absolute form min + v*max - v*min against its owning axis's bounds;
// absolute and pixel components pass through. When bounds are not yet
// known, the rewrite uses symbolic \pgfkeysvalueof references, deferring
// the missing information to render time rather than failing.
func Resolve(x, y float64, xFrame, yFrame Frame, xBounds, yBounds Bounds) Resolved {
	if xFrame == FrameRelative && yFrame == FrameRelative {
		return Resolved{X: formatNum(x), Y: formatNum(y), FullyRelative: true}
	}
	return Resolved{
		X: resolveComponent("x", x, xFrame, xBounds),
		Y: resolveComponent("y", y, yFrame, yBounds),
	}
}

func resolveComponent(axis string, v float64, frame Frame, b Bounds) string {
	if frame != FrameRelative {
		return formatNum(v)
	}
	val := formatNum(v)
	return fmt.Sprintf("%s + %s*%s - %s*%s",
		boundRef(axis, "min", b), val, boundRef(axis, "max", b), val, boundRef(axis, "min", b))
}

// boundRef returns the textual form of one axis bound: the number itself
// when resolved, or a symbolic pgfkeys reference otherwise.
func boundRef(axis, which string, b Bounds) string {
	if b.Known {
		if which == "min" {
			return formatNum(b.Min)
		}
		return formatNum(b.Max)
	}
	return fmt.Sprintf("\\pgfkeysvalueof{/pgfplots/%s%s}", axis, which)
}
