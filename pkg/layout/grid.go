package layout

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/errors"
)

// axisUnitsPerPanel is the width of one panel's axis box in group plot
// units. Offsets expressed in pixels are converted into this unit system
// exactly once, in NewGeometry and ToCanvasFrame.
const axisUnitsPerPanel = 100.0

// Geometry describes a (possibly 1x1) grid of panels sharing one canvas.
//
// Panel index i maps to grid cell (i / Cols, i % Cols): row-major, filled
// left to right, top to bottom. Row 0 is the top row in the output frame;
// the source frame indexes rows from the bottom, so the flip is recorded
// here once ([Geometry.SourceRow]) and applied consistently.
type Geometry struct {
	Rows, Cols int
	NumPanels  int

	// Per-panel axis box dimensions in pixels.
	PanelWidth, PanelHeight float64

	// Margins around each panel's axis box, in pixels.
	MarginLeft, MarginRight, MarginTop, MarginBottom float64

	// Overall canvas extent in axis units, outer margins included. May
	// differ from Rows*PanelHeight plus margins when source and target
	// disagree on whether margins sit inside the logical canvas.
	CanvasWidth, CanvasHeight float64
}

// NewGeometry builds a Geometry for the given grid shape, filling
// CanvasWidth and CanvasHeight with the margin-inclusive extent converted
// to axis units.
func NewGeometry(rows, cols, numPanels int, panelW, panelH, mL, mR, mT, mB float64) Geometry {
	g := Geometry{
		Rows: rows, Cols: cols, NumPanels: numPanels,
		PanelWidth: panelW, PanelHeight: panelH,
		MarginLeft: mL, MarginRight: mR, MarginTop: mT, MarginBottom: mB,
	}
	if panelW > 0 {
		scale := axisUnitsPerPanel / panelW
		g.CanvasWidth = float64(cols) * (panelW + mL + mR) * scale
		g.CanvasHeight = float64(rows) * (panelH + mT + mB) * scale
	}
	return g
}

// Validate rejects malformed geometry. This is the engine's only fatal
// input class: zero or negative panel dimensions and non-positive grid
// shapes stop the render instead of degrading.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "grid shape %dx%d is not positive", g.Rows, g.Cols)
	}
	if g.PanelWidth <= 0 || g.PanelHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "panel dimensions %gx%g are not positive", g.PanelWidth, g.PanelHeight)
	}
	if g.NumPanels <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "panel count %d is not positive", g.NumPanels)
	}
	if g.NumPanels > g.Rows*g.Cols {
		return errors.New(errors.ErrCodeInvalidGeometry, "%d panels do not fit a %dx%d grid", g.NumPanels, g.Rows, g.Cols)
	}
	return nil
}

// Multi reports whether the canvas holds more than one panel. With a
// single panel the canvas transform must be skipped entirely: positions
// stay in the axis-relative or axis-absolute frame.
func (g Geometry) Multi() bool { return g.NumPanels > 1 }

// Position maps a panel's creation-order index to its (row, col) cell.
func (g Geometry) Position(index int) (row, col int) {
	return index / g.Cols, index % g.Cols
}

// SourceRow converts an output row (0 = top) to the source frame's row
// index (0 = bottom).
func (g Geometry) SourceRow(row int) int { return g.Rows - 1 - row }

// ToCanvasFrame converts a paper-fraction position inside the canvas into
// the coordinate frame of the last-created panel, which anchors the output
// picture. xExpr and yExpr are the components of an already-resolved
// position; fullyRelative reports whether both were paper fractions.
//
// The transform is only defined for fully-relative inputs. Non-relative
// input is warned about and processed best-effort; accuracy off the
// relative path is not guaranteed.
//
// The output x is the raw canvas-fraction position minus the horizontal
// offset of the last panel's origin. The output y is rescaled by
// CanvasHeight/CanvasWidth (the target frame expresses the vertical axis
// relative to a width-based unit) and then reduced by the bottom margin
// scaled the same way; only the bottom margin applies because the
// last-created panel's local frame already anchors the canvas's vertical
// origin.
func (g Geometry) ToCanvasFrame(xExpr, yExpr string, fullyRelative bool, sink *diag.Sink) (string, string) {
	if !fullyRelative {
		sink.Warnf("layout", "canvas transform given a non-relative position (%s, %s); output may be inaccurate", xExpr, yExpr)
	}

	_, lastCol := g.Position(g.NumPanels - 1)
	scale := axisUnitsPerPanel / g.PanelWidth
	xOffset := (float64(lastCol)*(g.PanelWidth+g.MarginLeft+g.MarginRight) + g.MarginLeft) * scale
	yOffset := g.MarginBottom

	ratio := g.CanvasHeight / g.CanvasWidth
	x := fmt.Sprintf("%s * %s - %s", xExpr, formatNum(g.CanvasWidth), formatNum(xOffset))
	y := fmt.Sprintf("%s * %s * %s - %s", yExpr, formatNum(g.CanvasHeight), formatNum(ratio), formatNum(yOffset*ratio))
	return x, y
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
