package mesh

import (
	"math"
	"strings"
	"testing"
)

func TestRasterizeDoublesDimensions(t *testing.T) {
	matrix := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	m := Rasterize(matrix)

	if m.Rows() != 4 || m.Cols() != 6 {
		t.Fatalf("mesh is %dx%d, want 4x6", m.Rows(), m.Cols())
	}
	if m.SourceRows != 2 || m.SourceCols != 3 {
		t.Errorf("source dims %dx%d, want 2x3", m.SourceRows, m.SourceCols)
	}
	for j := 0; j < m.Rows(); j++ {
		for i := 0; i < m.Cols(); i++ {
			if got, want := m.Values[j][i], matrix[j/2][i/2]; got != want {
				t.Errorf("value (%d,%d) = %g, want matrix[%d][%d] = %g", j, i, got, j/2, i/2, want)
			}
		}
	}
}

func TestRasterizeCoordinates(t *testing.T) {
	m := Rasterize([][]float64{{7}})

	wantX := []float64{0, 1 - Epsilon}
	for i, want := range wantX {
		if m.X[i] != want {
			t.Errorf("X[%d] = %g, want %g", i, m.X[i], want)
		}
	}
	wantY := []float64{0, 1 - Epsilon}
	for j, want := range wantY {
		if m.Y[j] != want {
			t.Errorf("Y[%d] = %g, want %g", j, m.Y[j], want)
		}
	}

	// Even vertices sit exactly on the integer grid; odd ones are
	// retracted but must stay strictly below the next integer.
	if m.X[1] >= 1 {
		t.Error("retracted coordinate collapsed onto the integer grid")
	}
}

func TestRasterizeSkirtPattern(t *testing.T) {
	m := Rasterize([][]float64{{1, 2}})
	// X for 4 columns: 0, 1-eps, 1, 2-eps
	want := []float64{0, 1 - Epsilon, 1, 2 - Epsilon}
	for i, w := range want {
		if m.X[i] != w {
			t.Errorf("X[%d] = %g, want %g", i, m.X[i], w)
		}
	}
}

func TestRasterizeEmpty(t *testing.T) {
	for _, matrix := range [][][]float64{nil, {}, {{}}} {
		m := Rasterize(matrix)
		if !m.Empty() {
			t.Errorf("Rasterize(%v) not empty", matrix)
		}
		if m.Block() != "" {
			t.Errorf("empty mesh rendered a non-empty block")
		}
	}
}

func TestBlockFormat(t *testing.T) {
	m := Rasterize([][]float64{{5}})
	block := m.Block()

	lines := strings.Split(block, "\n")
	// 2 rows x (2 vertices + 1 blank) + trailing split artifact.
	if len(lines) != 7 {
		t.Fatalf("block has %d lines, want 7:\n%s", len(lines), block)
	}
	if lines[0] != "0 0 5" {
		t.Errorf("first vertex line = %q, want \"0 0 5\"", lines[0])
	}
	if lines[2] != "" || lines[5] != "" {
		t.Error("rows must be separated by blank lines")
	}
}

func TestBlockNaN(t *testing.T) {
	m := Rasterize([][]float64{{math.NaN()}})
	if !strings.Contains(m.Block(), "nan") {
		t.Error("NaN cells must render as nan")
	}
}

func TestRasterizeRaggedRows(t *testing.T) {
	m := Rasterize([][]float64{{1, 2}, {3}})
	if !math.IsNaN(m.Values[2][2]) {
		t.Error("missing cells in ragged input should become NaN")
	}
	if m.Values[2][0] != 3 {
		t.Errorf("present cell = %g, want 3", m.Values[2][0])
	}
}
