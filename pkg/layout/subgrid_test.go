package layout

import "testing"

func corners() []Point {
	return []Point{
		{Label: "a", X: 0.2, Y: 0.9},
		{Label: "b", X: 0.7, Y: 0.9},
		{Label: "c", X: 0.2, Y: 0.4},
		{Label: "d", X: 0.7, Y: 0.4},
	}
}

func TestFindSubgridsFourCorners(t *testing.T) {
	var clean []Grid
	total := 0
	for g, ws := range FindSubgrids(corners(), 2, 2, 4, nil) {
		total++
		if len(ws) == 0 {
			clean = append(clean, g)
		}
	}
	if total == 0 {
		t.Fatal("no candidates produced")
	}
	if len(clean) != 1 {
		t.Fatalf("got %d warning-free candidates, want exactly 1", len(clean))
	}

	g := clean[0]
	if g.RowY[0] != 0.9 || g.RowY[1] != 0.4 {
		t.Errorf("RowY = %v, want [0.9 0.4] (top row first)", g.RowY)
	}
	if g.ColX[0] != 0.2 || g.ColX[1] != 0.7 {
		t.Errorf("ColX = %v, want [0.2 0.7]", g.ColX)
	}
	wantLabels := [][]string{{"a", "b"}, {"c", "d"}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			cell := g.Cell(r, c)
			if len(cell) != 1 || cell[0].Label != wantLabels[r][c] {
				t.Errorf("cell (%d,%d) = %v, want single point %q", r, c, cell, wantLabels[r][c])
			}
		}
	}
}

func TestBestGridZeroWarnings(t *testing.T) {
	m, ok := BestGrid(corners(), 2, 2, 4)
	if !ok {
		t.Fatal("no match for a perfect grid")
	}
	if len(m.Warnings) != 0 || m.FirstRowOnly {
		t.Errorf("perfect grid matched with warnings=%v firstRowOnly=%v", m.Warnings, m.FirstRowOnly)
	}
}

func TestBestGridMissingPoint(t *testing.T) {
	pts := corners()[:3] // drop "d"
	m, ok := BestGrid(pts, 2, 2, 4)
	if !ok {
		t.Fatal("grid with one hole should still match")
	}
	if len(m.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", m.Warnings)
	}
	w := m.Warnings[0]
	if w.Kind != WarnMissingCell || w.Row != 1 || w.Col != 1 {
		t.Errorf("warning = %v, want missing cell at (1,1)", w)
	}
}

func TestBestGridAmbiguousCell(t *testing.T) {
	pts := append(corners(), Point{Label: "dup", X: 0.2, Y: 0.9})
	m, ok := BestGrid(pts, 2, 2, 4)
	if !ok {
		t.Fatal("no match")
	}
	if len(m.Warnings) != 1 || m.Warnings[0].Kind != WarnAmbiguousCell {
		t.Errorf("warnings = %v, want one ambiguous cell", m.Warnings)
	}
	cell := m.Grid.Cell(0, 0)
	if len(cell) != 2 {
		t.Errorf("ambiguous cell holds %d points, want 2", len(cell))
	}
}

func TestFindSubgridsInsufficientCoordinates(t *testing.T) {
	pts := []Point{
		{Label: "a", X: 0.5, Y: 0.9},
		{Label: "b", X: 0.5, Y: 0.4},
	}
	for range FindSubgrids(pts, 2, 2, 4, nil) {
		t.Fatal("one distinct x cannot fill two columns")
	}
}

func TestBestGridFirstRowFallback(t *testing.T) {
	// Only a top row of labels exists: no 2x2 grid is possible, so the
	// ranking falls back to a 1 x cols match.
	pts := []Point{
		{Label: "left", X: 0.2, Y: 0.9},
		{Label: "right", X: 0.7, Y: 0.9},
	}
	m, ok := BestGrid(pts, 2, 2, 4)
	if !ok {
		t.Fatal("first-row fallback did not match")
	}
	if !m.FirstRowOnly {
		t.Fatal("match should be marked first-row-only")
	}
	if m.Grid.Rows != 1 || m.Grid.Cols != 2 {
		t.Errorf("fallback shape = %dx%d, want 1x2", m.Grid.Rows, m.Grid.Cols)
	}
	if m.Grid.RowY[0] != 0.9 {
		t.Errorf("fallback row y = %v, want 0.9", m.Grid.RowY[0])
	}
}

func TestFindSubgridsExcessCoordinates(t *testing.T) {
	// A stray point adds a third distinct x; the search must peel it off
	// and still find the clean 2x2 grid.
	pts := append(corners(), Point{Label: "stray", X: 0.99, Y: 0.1})
	found := false
	for g, ws := range FindSubgrids(pts, 2, 2, 4, nil) {
		if len(ws) == 0 && g.ColX[0] == 0.2 && g.ColX[1] == 0.7 {
			found = true
			break
		}
	}
	if !found {
		t.Error("search did not recover the clean grid from noisy input")
	}
}

func TestCheckGridRejectsWrongShape(t *testing.T) {
	g := buildGrid(corners(), []float64{0.9, 0.4}, []float64{0.2, 0.7})
	if valid, _ := CheckGrid(g, 3, 2, 6); valid {
		t.Error("2x2 grid validated against a 3x2 target")
	}
}

func TestCheckGridStrayCell(t *testing.T) {
	g := buildGrid(corners(), []float64{0.9, 0.4}, []float64{0.2, 0.7})
	valid, ws := CheckGrid(g, 2, 2, 3)
	if !valid {
		t.Fatal("grid should be hard-valid")
	}
	if len(ws) != 1 || ws[0].Kind != WarnStrayCell {
		t.Errorf("warnings = %v, want one stray cell", ws)
	}
}
