package figure

import (
	"math"
	"testing"

	"github.com/matzehuels/tikzbridge/pkg/errors"
)

const scatterJSON = `{
  "data": [
    {"type": "scatter", "name": "trace 0", "x": [1, 2, "2024-01-05", null], "y": [4, 5, 6, 7]}
  ],
  "layout": {
    "title": "My figure",
    "width": 800,
    "xaxis": {"title": {"text": "time"}, "range": [0, 10]}
  }
}`

func TestParseJSON(t *testing.T) {
	fig, err := ParseJSON([]byte(scatterJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if len(fig.Data) != 1 {
		t.Fatalf("got %d traces, want 1", len(fig.Data))
	}
	tr := fig.Data[0]
	if tr.Type != "scatter" || tr.Name != "trace 0" {
		t.Errorf("trace = %+v", tr)
	}

	// Mixed datum kinds in one array.
	if f, ok := tr.X[0].Number(); !ok || f != 1 {
		t.Errorf("X[0] = %v, want number 1", tr.X[0])
	}
	if s, ok := tr.X[2].Text(); !ok || s != "2024-01-05" {
		t.Errorf("X[2] = %v, want text datum", tr.X[2])
	}
	if !tr.X[3].IsNull() {
		t.Errorf("X[3] = %v, want null", tr.X[3])
	}
	if tr.X[3].String() != "nan" {
		t.Errorf("null datum renders %q, want nan", tr.X[3].String())
	}

	// Scalar title form.
	if fig.Layout.Title.Text != "My figure" {
		t.Errorf("title = %q", fig.Layout.Title.Text)
	}
	if min, max, ok := fig.Layout.XAxis.Bounds(); !ok || min != 0 || max != 10 {
		t.Errorf("x bounds = (%g, %g, %v)", min, max, ok)
	}
}

const heatmapYAML = `
data:
  - type: heatmap
    z:
      - [1, 2]
      - [3, null]
layout:
  title:
    text: Heat
  grid:
    rows: 1
    columns: 1
`

func TestParseYAML(t *testing.T) {
	fig, err := ParseYAML([]byte(heatmapYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	m := fig.Data[0].ZMatrix()
	if len(m) != 2 || len(m[0]) != 2 {
		t.Fatalf("matrix shape %v", m)
	}
	if m[0][1] != 2 {
		t.Errorf("m[0][1] = %g, want 2", m[0][1])
	}
	if !math.IsNaN(m[1][1]) {
		t.Error("null z cell should decode to NaN")
	}
	if fig.Layout.Title.Text != "Heat" {
		t.Errorf("mapping title form failed: %q", fig.Layout.Title.Text)
	}
	if fig.Layout.Grid == nil || fig.Layout.Grid.Rows != 1 {
		t.Errorf("grid = %+v", fig.Layout.Grid)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("malformed JSON accepted")
	} else if errors.GetCode(err) != errors.ErrCodeInvalidFigure {
		t.Errorf("error code = %v", errors.GetCode(err))
	}

	if _, err := Parse([]byte("{}"), "xml"); err == nil {
		t.Error("unknown format accepted")
	} else if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("error code = %v", errors.GetCode(err))
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path, want string
		wantErr    bool
	}{
		{"fig.json", FormatJSON, false},
		{"fig.yaml", FormatYAML, false},
		{"fig.YML", FormatYAML, false},
		{"fig.txt", "", true},
		{"fig", "", true},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLegendVisible(t *testing.T) {
	var tr Trace
	if !tr.LegendVisible() {
		t.Error("default should be visible")
	}
	hidden := false
	tr.ShowLegend = &hidden
	if tr.LegendVisible() {
		t.Error("explicit false should hide")
	}
}
