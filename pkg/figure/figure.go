// Package figure defines the input chart model consumed by the converter.
//
// The types here mirror the subset of the declarative figure format the
// engine actually reads: traces, axes, annotations and shapes, each
// exposing only the fields the layout engine consumes. Unknown fields in
// the input are ignored rather than modeled.
package figure

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Figure is a complete chart description: an ordered trace list plus the
// layout block shared by every trace.
type Figure struct {
	Data   []Trace `json:"data" yaml:"data"`
	Layout Layout  `json:"layout" yaml:"layout"`
}

// Layout carries figure-wide presentation: dimensions, margins, axes, the
// optional multi-panel grid, and free-floating annotations and shapes.
type Layout struct {
	Title       Title        `json:"title" yaml:"title"`
	Width       float64      `json:"width" yaml:"width"`
	Height      float64      `json:"height" yaml:"height"`
	Margin      Margin       `json:"margin" yaml:"margin"`
	Grid        *GridSpec    `json:"grid,omitempty" yaml:"grid,omitempty"`
	XAxis       AxisSpec     `json:"xaxis" yaml:"xaxis"`
	YAxis       AxisSpec     `json:"yaxis" yaml:"yaxis"`
	Legend      Legend       `json:"legend" yaml:"legend"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty" yaml:"shapes,omitempty"`
}

// GridSpec declares a multi-panel grid: panels fill the grid row-major.
type GridSpec struct {
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`
}

// Margin is the space around each panel's axis box, in pixels.
type Margin struct {
	L float64 `json:"l" yaml:"l"`
	R float64 `json:"r" yaml:"r"`
	T float64 `json:"t" yaml:"t"`
	B float64 `json:"b" yaml:"b"`
}

// Title is a text block. In the input it may appear either as a plain
// string or as an object with a text field; both decode into Title.
type Title struct {
	Text string `json:"text" yaml:"text"`
	Font Font   `json:"font" yaml:"font"`
}

// UnmarshalJSON accepts both "My title" and {"text": "My title"}.
func (t *Title) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Text = s
		return nil
	}
	type alias Title
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*t = Title(a)
	return nil
}

// UnmarshalYAML accepts both scalar and mapping forms.
func (t *Title) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Text = node.Value
		return nil
	}
	type alias Title
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	*t = Title(a)
	return nil
}

// Font is the subset of font styling the engine consumes.
type Font struct {
	Color string  `json:"color" yaml:"color"`
	Size  float64 `json:"size" yaml:"size"`
}

// Legend carries the legend title, the only legend property the engine
// maps to output.
type Legend struct {
	Title Title `json:"title" yaml:"title"`
}

// AxisSpec is one axis's declared presentation.
type AxisSpec struct {
	Title    Title     `json:"title" yaml:"title"`
	Range    []float64 `json:"range,omitempty" yaml:"range,omitempty"`
	Visible  *bool     `json:"visible,omitempty" yaml:"visible,omitempty"`
	ShowGrid *bool     `json:"showgrid,omitempty" yaml:"showgrid,omitempty"`
	ZeroLine *bool     `json:"zeroline,omitempty" yaml:"zeroline,omitempty"`
}

// Bounds returns the declared axis range, if any.
func (a AxisSpec) Bounds() (min, max float64, ok bool) {
	if len(a.Range) == 2 {
		return a.Range[0], a.Range[1], true
	}
	return 0, 0, false
}

// Trace is one data series. Type selects the converter; the remaining
// fields are read or ignored per type.
type Trace struct {
	Type        string    `json:"type" yaml:"type"`
	Name        string    `json:"name" yaml:"name"`
	X           []Datum   `json:"x,omitempty" yaml:"x,omitempty"`
	Y           []Datum   `json:"y,omitempty" yaml:"y,omitempty"`
	Z           [][]Datum `json:"z,omitempty" yaml:"z,omitempty"`
	Mode        string    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Orientation string    `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Line        LineSpec  `json:"line" yaml:"line"`
	Marker      Marker    `json:"marker" yaml:"marker"`
	ShowLegend  *bool     `json:"showlegend,omitempty" yaml:"showlegend,omitempty"`
	XAxisRef    string    `json:"xaxis,omitempty" yaml:"xaxis,omitempty"` // "x", "x2", ... panel anchor
	YAxisRef    string    `json:"yaxis,omitempty" yaml:"yaxis,omitempty"`
	ErrorX      *ErrorBar `json:"error_x,omitempty" yaml:"error_x,omitempty"`
	ErrorY      *ErrorBar `json:"error_y,omitempty" yaml:"error_y,omitempty"`
}

// LegendVisible reports whether the trace should contribute a legend
// entry; the default is visible.
func (t Trace) LegendVisible() bool {
	return t.ShowLegend == nil || *t.ShowLegend
}

// ZMatrix converts the Z field to floats, mapping nulls and text to NaN.
func (t Trace) ZMatrix() [][]float64 {
	out := make([][]float64, len(t.Z))
	for j, row := range t.Z {
		out[j] = make([]float64, len(row))
		for i, d := range row {
			if f, ok := d.Number(); ok {
				out[j][i] = f
			} else {
				out[j][i] = math.NaN()
			}
		}
	}
	return out
}

// LineSpec is line styling shared by traces and shapes.
type LineSpec struct {
	Color string  `json:"color" yaml:"color"`
	Width float64 `json:"width" yaml:"width"`
	Dash  string  `json:"dash" yaml:"dash"`
}

// Marker is marker styling for scatter and bar traces.
type Marker struct {
	Color  string  `json:"color" yaml:"color"`
	Symbol string  `json:"symbol" yaml:"symbol"`
	Size   float64 `json:"size" yaml:"size"`
}

// ErrorBar is symmetric or asymmetric per-point error data.
type ErrorBar struct {
	Array      []float64 `json:"array,omitempty" yaml:"array,omitempty"`
	ArrayMinus []float64 `json:"arrayminus,omitempty" yaml:"arrayminus,omitempty"`
}

// Annotation is free-floating text anchored in one of the coordinate
// frames. XRef/YRef take "paper" for paper fractions or an axis reference
// for data units.
type Annotation struct {
	Text    string  `json:"text" yaml:"text"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	XRef    string  `json:"xref" yaml:"xref"`
	YRef    string  `json:"yref" yaml:"yref"`
	XAnchor string  `json:"xanchor" yaml:"xanchor"`
	YAnchor string  `json:"yanchor" yaml:"yanchor"`
	Font    Font    `json:"font" yaml:"font"`
}

// Shape is a geometric primitive drawn over the panel.
type Shape struct {
	Type string   `json:"type" yaml:"type"`
	X0   float64  `json:"x0" yaml:"x0"`
	Y0   float64  `json:"y0" yaml:"y0"`
	X1   float64  `json:"x1" yaml:"x1"`
	Y1   float64  `json:"y1" yaml:"y1"`
	XRef string   `json:"xref" yaml:"xref"`
	YRef string   `json:"yref" yaml:"yref"`
	Line LineSpec `json:"line" yaml:"line"`
}

// datumKind discriminates Datum payloads.
type datumKind int

const (
	datumNull datumKind = iota
	datumNumber
	datumText
)

// Datum is one data value: a number, a text category, or null. Data
// arrays in the input freely mix these, so a bare float64 cannot model
// them.
type Datum struct {
	kind datumKind
	num  float64
	str  string
}

// NumberDatum returns a numeric datum.
func NumberDatum(f float64) Datum { return Datum{kind: datumNumber, num: f} }

// TextDatum returns a text datum.
func TextDatum(s string) Datum { return Datum{kind: datumText, str: s} }

// NullDatum returns the null datum.
func NullDatum() Datum { return Datum{} }

// IsNull reports whether the datum is null.
func (d Datum) IsNull() bool { return d.kind == datumNull }

// Number returns the numeric payload.
func (d Datum) Number() (float64, bool) { return d.num, d.kind == datumNumber }

// Text returns the text payload.
func (d Datum) Text() (string, bool) { return d.str, d.kind == datumText }

// String renders the datum for data tables: numbers in shortest form,
// text verbatim, null as "nan".
func (d Datum) String() string {
	switch d.kind {
	case datumNumber:
		return strconv.FormatFloat(d.num, 'g', -1, 64)
	case datumText:
		return d.str
	}
	return "nan"
}

// UnmarshalJSON accepts numbers, strings, and null.
func (d *Datum) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Datum{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = NumberDatum(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = TextDatum(s)
		return nil
	}
	return fmt.Errorf("datum: cannot decode %s", string(b))
}

// MarshalJSON renders the datum back to its natural JSON form.
func (d Datum) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case datumNumber:
		return json.Marshal(d.num)
	case datumText:
		return json.Marshal(d.str)
	}
	return []byte("null"), nil
}

// UnmarshalYAML accepts scalar numbers, strings, and nulls.
func (d *Datum) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*d = Datum{}
		return nil
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		*d = NumberDatum(f)
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		*d = TextDatum(s)
		return nil
	}
	return fmt.Errorf("datum: cannot decode yaml node %q", node.Value)
}
