// Package mesh expands heatmap matrices into surface vertex meshes.
//
// The target renderer only draws continuous interpolated surfaces, so a
// discrete R x C heatmap is emulated by duplicating every vertex into a
// (2R) x (2C) grid and retracting alternate copies by a tiny epsilon.
// The resulting near-vertical cliffs read visually as flat, sharply
// bordered cells.
package mesh

import (
	"math"
	"strconv"
	"strings"
)

// Epsilon is the skirt retraction applied to odd rows and columns. It is
// small enough to be visually imperceptible yet large enough to avoid
// float-equality collapse with the adjacent integer coordinate.
const Epsilon = 1e-6

// Mesh is a (2R) x (2C) grid of vertices derived from an R x C matrix.
// X holds the 2C column coordinates, Y the 2R row coordinates, and Values
// the per-vertex scalar values in row-major order.
type Mesh struct {
	SourceRows, SourceCols int
	X, Y                   []float64
	Values                 [][]float64
}

// Rows returns the number of mesh rows (2R).
func (m Mesh) Rows() int { return len(m.Values) }

// Cols returns the number of mesh columns (2C).
func (m Mesh) Cols() int { return len(m.X) }

// Empty reports whether the mesh carries no data.
func (m Mesh) Empty() bool { return len(m.Values) == 0 || len(m.X) == 0 }

// Rasterize expands matrix into its vertex mesh.
//
// For output cell (j, i): the value is matrix[j/2][i/2], the x-coordinate
// is (i+1)/2 - (i%2)*Epsilon and the y-coordinate is (j+1)/2 - (j%2)*Epsilon
// (integer division). A matrix with zero rows or columns yields an empty
// mesh; this is valid and must not fail. NaN cells pass through unchanged
// for the color-mapping step to handle.
func Rasterize(matrix [][]float64) Mesh {
	rows := len(matrix)
	cols := 0
	if rows > 0 {
		cols = len(matrix[0])
	}
	if rows == 0 || cols == 0 {
		return Mesh{}
	}

	m := Mesh{
		SourceRows: rows,
		SourceCols: cols,
		X:          make([]float64, 2*cols),
		Y:          make([]float64, 2*rows),
		Values:     make([][]float64, 2*rows),
	}
	for i := range m.X {
		m.X[i] = float64((i+1)/2) - float64(i%2)*Epsilon
	}
	for j := range m.Y {
		m.Y[j] = float64((j+1)/2) - float64(j%2)*Epsilon
	}
	for j := range m.Values {
		row := make([]float64, 2*cols)
		src := matrix[j/2]
		for i := range row {
			if i/2 < len(src) {
				row[i] = src[i/2]
			} else {
				// Ragged input: missing cells propagate as NaN.
				row[i] = math.NaN()
			}
		}
		m.Values[j] = row
	}
	return m
}

// Block renders the mesh as a surf data block: one "x y value" line per
// vertex, emitted row-major, with a blank separator line after every mesh
// row. The trailing blank separator is required by the target renderer's
// parsing at panel boundaries, not by the data itself. An empty mesh
// renders as an empty block.
func (m Mesh) Block() string {
	if m.Empty() {
		return ""
	}
	var b strings.Builder
	for j, row := range m.Values {
		for i, v := range row {
			b.WriteString(formatCoord(m.X[i]))
			b.WriteByte(' ')
			b.WriteString(formatCoord(m.Y[j]))
			b.WriteByte(' ')
			b.WriteString(formatValue(v))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatValue(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
