package trace

import (
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/figure"
)

const component = "trace"

var monthNames = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true,
	"may": true, "jun": true, "jul": true, "aug": true,
	"sep": true, "oct": true, "nov": true, "dec": true,
}

// inspectData looks at the first text datum of a series and warns about
// value classes that need extra care in the output document: ISO dates
// need the dateplot library, month names are typeset as plain symbols.
func inspectData(vals []figure.Datum, sink *diag.Sink) {
	for _, d := range vals {
		t, ok := d.Text()
		if !ok {
			continue
		}
		switch {
		case looksLikeDate(t):
			sink.Warnf(component, "data contains dates; add \\usepgfplotslibrary{dateplot} to the preamble")
		case monthNames[strings.ToLower(t)]:
			sink.Warnf(component, "data contains month names; they are typeset as plain symbolic coordinates")
		}
		return
	}
}

func looksLikeDate(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// pairSeries trims x and y to a common length. A mismatch is a
// recoverable input defect: warn and keep the overlapping prefix.
func pairSeries(x, y []figure.Datum, sink *diag.Sink) ([]figure.Datum, []figure.Datum) {
	if len(x) == len(y) {
		return x, y
	}
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	sink.Warnf(component, "x and y lengths differ (%d vs %d); truncating to %d points", len(x), len(y), n)
	return x[:n], y[:n]
}

// dataTable renders paired series as a pgfplots table body, one "x y"
// line per point.
func dataTable(x, y []figure.Datum) string {
	var b strings.Builder
	for i := range x {
		b.WriteString(x[i].String())
		b.WriteByte(' ')
		b.WriteString(y[i].String())
		b.WriteByte('\n')
	}
	return b.String()
}
