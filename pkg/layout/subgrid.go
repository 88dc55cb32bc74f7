package layout

import (
	"fmt"
	"iter"
	"slices"
)

// Point is a labeled 2-D position in the source paper-fraction frame,
// used by the subgrid search to decide whether free-floating text should
// be reinterpreted as panel titles.
type Point struct {
	Label string
	X, Y  float64
}

// Grid is a candidate assignment of points to an R x C grid of cells.
// RowY holds one shared y-coordinate per row (row 0 first), ColX one
// shared x-coordinate per column (left to right). Cells[r][c] lists every
// point placed in that cell; when more than one lands there, the last one
// wins downstream.
type Grid struct {
	Rows, Cols int
	RowY       []float64
	ColX       []float64
	Cells      [][][]Point
}

// Cell returns the points assigned to cell (r, c).
func (g Grid) Cell(r, c int) []Point { return g.Cells[r][c] }

// GridWarningKind classifies soft consistency problems in a candidate
// grid, ordered by severity.
type GridWarningKind int

// Soft warning kinds, most severe first.
const (
	WarnAmbiguousCell GridWarningKind = iota // more than one point; last wins
	WarnMissingCell                          // empty cell within the expected count
	WarnStrayCell                            // populated cell beyond the expected count
)

func (k GridWarningKind) String() string {
	switch k {
	case WarnAmbiguousCell:
		return "ambiguous cell"
	case WarnMissingCell:
		return "missing label"
	case WarnStrayCell:
		return "stray label"
	}
	return "unknown"
}

// GridWarning is one soft consistency warning for a candidate grid.
type GridWarning struct {
	Kind     GridWarningKind
	Row, Col int
}

func (w GridWarning) String() string {
	return fmt.Sprintf("%s at (%d,%d)", w.Kind, w.Row, w.Col)
}

// CheckFunc validates a candidate grid against the target shape. It
// reports hard validity plus a severity-ranked list of soft warnings.
type CheckFunc func(g Grid, rows, cols, expected int) (bool, []GridWarning)

// CheckGrid is the default grid validation.
//
// It fails hard, discarding the candidate, if the row count, column
// count, or per-row/per-column coordinate uniformity is wrong. Otherwise
// it returns valid plus soft warnings for ambiguous cells (more than one
// point), missing cells (empty at a row-major index within expected), and
// stray cells (populated beyond expected).
func CheckGrid(g Grid, rows, cols, expected int) (bool, []GridWarning) {
	if g.Rows != rows || g.Cols != cols {
		return false, nil
	}
	if len(g.RowY) != rows || len(g.ColX) != cols || len(g.Cells) != rows {
		return false, nil
	}
	for r := range g.Cells {
		if len(g.Cells[r]) != cols {
			return false, nil
		}
		for c := range g.Cells[r] {
			for _, p := range g.Cells[r][c] {
				if p.Y != g.RowY[r] || p.X != g.ColX[c] {
					return false, nil
				}
			}
		}
	}

	var warnings []GridWarning
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := len(g.Cells[r][c])
			idx := r*cols + c
			switch {
			case n > 1:
				warnings = append(warnings, GridWarning{Kind: WarnAmbiguousCell, Row: r, Col: c})
			case n == 0 && idx < expected:
				warnings = append(warnings, GridWarning{Kind: WarnMissingCell, Row: r, Col: c})
			case n > 0 && idx >= expected:
				warnings = append(warnings, GridWarning{Kind: WarnStrayCell, Row: r, Col: c})
			}
		}
	}
	slices.SortFunc(warnings, func(a, b GridWarning) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return true, warnings
}

// FindSubgrids lazily produces candidate grids assigning points to a
// rows x cols grid, each paired with its soft warnings.
//
// If fewer distinct x-coordinates than cols or distinct y-coordinates than
// rows exist, no grid can exist and nothing is produced. When the distinct
// counts match the targets exactly, the single direct candidate is built
// and validated. Otherwise a bounded backtracking search peels extremal
// coordinates off whichever axis still has excess distinct values,
// alternating axis preference across recursive calls, reserving each
// peeled coordinate as a grid row or column and re-validating after every
// extension of a sub-result.
//
// check may be nil, in which case CheckGrid is used. Candidates that fail
// the hard check are silently discarded; the caller ranks the survivors.
// The branching factor is bounded by the excess distinct coordinates per
// axis; this is acceptable for chart panel counts but not for large point
// sets.
func FindSubgrids(points []Point, rows, cols, expected int, check CheckFunc) iter.Seq2[Grid, []GridWarning] {
	if check == nil {
		check = CheckGrid
	}
	return func(yield func(Grid, []GridWarning) bool) {
		if rows < 0 || cols < 0 {
			return
		}
		xs := distinctCoords(points, func(p Point) float64 { return p.X })
		ys := distinctCoords(points, func(p Point) float64 { return p.Y })

		s := subgridSearch{points: points, expected: expected, check: check}
		s.search(xs, ys, rows, cols, false, func(rowY, colX []float64) bool {
			g := buildGrid(s.points, rowY, colX)
			valid, warnings := s.check(g, rows, cols, s.expected)
			if !valid {
				return true
			}
			return yield(g, warnings)
		})
	}
}

type subgridSearch struct {
	points   []Point
	expected int
	check    CheckFunc
}

// emitFn receives a candidate's row and column coordinates. Returning
// false stops the search (the consumer stopped iterating).
type emitFn func(rowY, colX []float64) bool

// search recursively reduces the distinct coordinate sets toward the
// target shape. Each level validates extended candidates against its own
// local targets before passing them upward, so dead branches are pruned
// as soon as an extension breaks uniformity.
func (s *subgridSearch) search(xs, ys []float64, rows, cols int, preferX bool, emit emitFn) bool {
	if len(xs) < cols || len(ys) < rows {
		return true
	}
	doneX := cols == 0 || len(xs) == cols
	doneY := rows == 0 || len(ys) == rows
	if doneX && doneY {
		var rowY, colX []float64
		if rows > 0 {
			rowY = sortedDesc(ys)
		}
		if cols > 0 {
			colX = sortedAsc(xs)
		}
		return emit(rowY, colX)
	}

	// Reduce the axis not already pinned to its target; alternate
	// preference between levels to avoid systematic bias.
	reduceY := !doneY && (doneX || !preferX)

	validated := func(rowY, colX []float64, localRows, localCols int) bool {
		g := buildGrid(s.points, rowY, colX)
		if valid, _ := s.check(g, localRows, localCols, s.expected); !valid {
			return true // discard, keep searching
		}
		return emit(rowY, colX)
	}

	if reduceY {
		for _, v := range extremes(ys) {
			rest := removeCoord(ys, v)
			cont := s.search(xs, rest, rows-1, cols, !preferX, func(rowY, colX []float64) bool {
				if !validated(prependCoord(v, rowY), colX, rows, cols) {
					return false
				}
				if len(rowY) > 0 {
					return validated(appendCoord(rowY, v), colX, rows, cols)
				}
				return true
			})
			if !cont {
				return false
			}
		}
		return true
	}

	for _, v := range extremes(xs) {
		rest := removeCoord(xs, v)
		cont := s.search(rest, ys, rows, cols-1, !preferX, func(rowY, colX []float64) bool {
			if !validated(rowY, prependCoord(v, colX), rows, cols) {
				return false
			}
			if len(colX) > 0 {
				return validated(rowY, appendCoord(colX, v), rows, cols)
			}
			return true
		})
		if !cont {
			return false
		}
	}
	return true
}

// Match is the outcome of BestGrid: the chosen candidate, its warnings,
// and whether only a first-row match could be found.
type Match struct {
	Grid         Grid
	Warnings     []GridWarning
	FirstRowOnly bool
}

// BestGrid runs the subgrid search and applies the consumer ranking:
// a fully-valid full grid first, then the full grid with the fewest
// warnings, then, if no full grid exists, a first-row-only match
// (1 x cols), preferring the candidate closest to the top of the canvas.
func BestGrid(points []Point, rows, cols, expected int) (Match, bool) {
	var best Match
	found := false
	for g, ws := range FindSubgrids(points, rows, cols, expected, nil) {
		if len(ws) == 0 {
			return Match{Grid: g, Warnings: ws}, true
		}
		if !found || len(ws) < len(best.Warnings) {
			best = Match{Grid: g, Warnings: ws}
			found = true
		}
	}
	if found {
		return best, true
	}

	for g, ws := range FindSubgrids(points, 1, cols, cols, nil) {
		better := !found ||
			g.RowY[0] > best.Grid.RowY[0] ||
			(g.RowY[0] == best.Grid.RowY[0] && len(ws) < len(best.Warnings))
		if better {
			best = Match{Grid: g, Warnings: ws, FirstRowOnly: true}
			found = true
		}
	}
	return best, found
}

// buildGrid materializes cells from the chosen row/column coordinates:
// cell (r, c) holds every point whose coordinates equal (ColX[c], RowY[r]).
// Points matching no chosen coordinate fall outside the grid.
func buildGrid(points []Point, rowY, colX []float64) Grid {
	g := Grid{
		Rows: len(rowY),
		Cols: len(colX),
		RowY: slices.Clone(rowY),
		ColX: slices.Clone(colX),
	}
	g.Cells = make([][][]Point, g.Rows)
	for r := range g.Cells {
		g.Cells[r] = make([][]Point, g.Cols)
	}
	for _, p := range points {
		r := slices.Index(rowY, p.Y)
		c := slices.Index(colX, p.X)
		if r >= 0 && c >= 0 {
			g.Cells[r][c] = append(g.Cells[r][c], p)
		}
	}
	return g
}

func distinctCoords(points []Point, get func(Point) float64) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, p := range points {
		v := get(p)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// extremes returns the maximal then minimal value, or a single element
// when only one distinct value remains.
func extremes(coords []float64) []float64 {
	lo := slices.Min(coords)
	hi := slices.Max(coords)
	if lo == hi {
		return []float64{hi}
	}
	return []float64{hi, lo}
}

func removeCoord(coords []float64, v float64) []float64 {
	out := make([]float64, 0, len(coords)-1)
	for _, c := range coords {
		if c != v {
			out = append(out, c)
		}
	}
	return out
}

func prependCoord(v float64, coords []float64) []float64 {
	return append([]float64{v}, coords...)
}

func appendCoord(coords []float64, v float64) []float64 {
	out := make([]float64, 0, len(coords)+1)
	out = append(out, coords...)
	return append(out, v)
}

func sortedAsc(coords []float64) []float64 {
	out := slices.Clone(coords)
	slices.Sort(out)
	return out
}

func sortedDesc(coords []float64) []float64 {
	out := sortedAsc(coords)
	slices.Reverse(out)
	return out
}
