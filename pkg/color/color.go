// Package color converts figure color references into pgf color definitions
// and maintains the shared color side-table emitted before any panel.
package color

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/diag"
)

const component = "color"

// Definition is one \definecolor entry: name, color model and components.
type Definition struct {
	Name       string // TeX-safe macro name
	Model      string // "HTML" or "RGB"
	Components string // e.g. "1f77b4" or "31,119,180"
}

// Set accumulates color definitions across all panels, deduplicated by
// value and kept in first-use order. Definitions are never retracted.
type Set struct {
	defs []Definition
	seen map[Definition]bool
}

// NewSet creates an empty color set.
func NewSet() *Set {
	return &Set{seen: map[Definition]bool{}}
}

// Add records a definition unless an identical one is already present.
func (s *Set) Add(d Definition) {
	if s.seen[d] {
		return
	}
	s.seen[d] = true
	s.defs = append(s.defs, d)
}

// Definitions returns all recorded definitions in first-use order.
func (s *Set) Definitions() []Definition {
	return append([]Definition(nil), s.defs...)
}

// Len returns the number of distinct definitions.
func (s *Set) Len() int { return len(s.defs) }

// digitNames maps digits to letters so generated color names are valid TeX
// macro names (TeX control sequences cannot contain digits).
var digitNames = map[rune]string{
	'0': "Z", '1': "O", '2': "T", '3': "Th", '4': "F",
	'5': "Fi", '6': "S", '7': "Se", '8': "E", '9': "N",
}

// TexSafeName replaces every digit in s with a letter code.
func TexSafeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if rep, ok := digitNames[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Convert turns a figure color reference into a usable pgf color name,
// registering a definition in set when one is needed.
//
// Supported forms:
//   - "#rrggbb" hex colors (HTML model)
//   - "rgb(r, g, b)" integer component colors (RGB model)
//   - "rgba(r, g, b, a)", where alpha is dropped with a warning
//
// Anything else is passed through unchanged with a warning, on the
// assumption that it is already a color name TeX knows about.
func Convert(raw string, set *Set, sink *diag.Sink) string {
	switch {
	case strings.HasPrefix(raw, "#"):
		hex := strings.TrimPrefix(raw, "#")
		d := Definition{Name: "c" + TexSafeName(hex), Model: "HTML", Components: hex}
		set.Add(d)
		return d.Name

	case strings.HasPrefix(raw, "rgba(") && strings.HasSuffix(raw, ")"):
		body := strings.TrimSuffix(strings.TrimPrefix(raw, "rgba("), ")")
		parts := splitComponents(body)
		if len(parts) != 4 {
			sink.Warnf(component, "color %q is not a valid rgba() value; passing through", raw)
			return raw
		}
		sink.Warnf(component, "color %q has an alpha channel, which is not representable; dropping alpha", raw)
		return rgbDefinition(parts[:3], set)

	case strings.HasPrefix(raw, "rgb(") && strings.HasSuffix(raw, ")"):
		body := strings.TrimSuffix(strings.TrimPrefix(raw, "rgb("), ")")
		parts := splitComponents(body)
		if len(parts) != 3 {
			sink.Warnf(component, "color %q is not a valid rgb() value; passing through", raw)
			return raw
		}
		return rgbDefinition(parts, set)

	default:
		sink.Warnf(component, "color %q is not in a recognized format; passing through", raw)
		return raw
	}
}

// FromRGB registers an RGB definition built from integer components.
func FromRGB(r, g, b int, set *Set) string {
	return rgbDefinition([]string{
		fmt.Sprintf("%d", r), fmt.Sprintf("%d", g), fmt.Sprintf("%d", b),
	}, set)
}

func rgbDefinition(parts []string, set *Set) string {
	comps := strings.Join(parts, ",")
	d := Definition{
		Name:       "cRGB" + TexSafeName(strings.Join(parts, "x")),
		Model:      "RGB",
		Components: comps,
	}
	set.Add(d)
	return d.Name
}

func splitComponents(body string) []string {
	raw := strings.Split(body, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
