// Package texgen emits TikZ/pgfplots markup fragments.
//
// All functions here are mechanical string producers: environments,
// \addplot commands, color definitions and text nodes. Layout decisions are
// made upstream; texgen only interpolates already-resolved option strings
// and coordinates.
package texgen

import (
	"fmt"
	"strings"
)

// EnvStack tracks open TeX environments so that generated code always
// closes what it opened, in reverse order.
type EnvStack struct {
	envs []string
}

// Depth returns the number of currently open environments.
func (s *EnvStack) Depth() int { return len(s.envs) }

// Comment returns a single-line TeX comment.
func Comment(text string) string {
	return "% " + text + "\n"
}

// BeginEnvironment opens environment env, optionally with a bracketed
// option block, and records it on the stack.
func BeginEnvironment(env string, stack *EnvStack, options string) string {
	stack.envs = append(stack.envs, env)
	if options != "" {
		return fmt.Sprintf("\\begin{%s}[\n%s\n]\n", env, options)
	}
	return fmt.Sprintf("\\begin{%s}\n", env)
}

// EndEnvironment closes the most recently opened environment.
func EndEnvironment(stack *EnvStack) string {
	if len(stack.envs) == 0 {
		return ""
	}
	env := stack.envs[len(stack.envs)-1]
	stack.envs = stack.envs[:len(stack.envs)-1]
	return fmt.Sprintf("\\end{%s}\n", env)
}

// EndAllEnvironments closes every environment still open.
func EndAllEnvironments(stack *EnvStack) string {
	var b strings.Builder
	for len(stack.envs) > 0 {
		b.WriteString(EndEnvironment(stack))
	}
	return b.String()
}

// AddPlot emits an \addplot command of the given plot type ("table" or
// "coordinates") wrapping the data block. With override set, the command
// suppresses pgfplots cycle-list styling (\addplot[...] instead of
// \addplot+[...]).
func AddPlot(data, plotType, opts string, override bool) string {
	var b strings.Builder
	if override {
		b.WriteString("\\addplot")
	} else {
		b.WriteString("\\addplot+")
	}
	b.WriteString(" ")
	if opts != "" {
		b.WriteString("[" + opts + "] ")
	}
	b.WriteString(plotType + " {%\n")
	b.WriteString(data)
	b.WriteString("};\n")
	return b.String()
}

// AddPlot3 emits an \addplot3 command, used for surface plots. Semantics
// match AddPlot otherwise.
func AddPlot3(data, plotType, opts string, override bool) string {
	var b strings.Builder
	if override {
		b.WriteString("\\addplot3")
	} else {
		b.WriteString("\\addplot3+")
	}
	b.WriteString(" ")
	if opts != "" {
		b.WriteString("[" + opts + "] ")
	}
	b.WriteString(plotType + " {%\n")
	b.WriteString(data)
	b.WriteString("};\n")
	return b.String()
}

// DefineColor emits a \definecolor command.
func DefineColor(name, model, components string) string {
	return fmt.Sprintf("\\definecolor{%s}{%s}{%s}\n", name, model, components)
}

// LegendEntry emits an \addlegendentry command.
func LegendEntry(text, opts string) string {
	if opts != "" {
		return fmt.Sprintf("\\addlegendentry[%s]{%s}\n", opts, text)
	}
	return fmt.Sprintf("\\addlegendentry{%s}\n", text)
}

// LegendImage emits an \addlegendimage command.
func LegendImage(opts string) string {
	return fmt.Sprintf("\\addlegendimage{%s}\n", opts)
}

// Coordinate systems for text nodes.
const (
	CoordAxis     = "axis cs:"     // axis data units
	CoordRelative = "rel axis cs:" // fraction of the axis box
	CoordPicture  = ""             // raw picture coordinates (group plots)
)

// TextNode emits a \node placing text at (x, y) in the given coordinate
// system. x and y may be numbers or pgf expressions.
func TextNode(x, y, text, opts, coordSystem string) string {
	if opts != "" {
		opts = "[" + opts + "]"
	}
	return fmt.Sprintf("\\node%s at (%s%s, %s) {%s};\n", opts, coordSystem, x, y, text)
}

// Draw emits a \draw command with the given path body.
func Draw(opts, path string) string {
	if opts != "" {
		opts = "[" + opts + "]"
	}
	return fmt.Sprintf("\\draw%s %s;\n", opts, path)
}

// CreateDocument returns a standalone document preamble suitable for
// compiling generated fragments on their own.
func CreateDocument(documentClass string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\documentclass{%s}\n", documentClass)
	b.WriteString("\\usepackage{pgf, tikz}\n\\usepackage{pgfplots}\n")
	b.WriteString("\\usepgfplotslibrary{groupplots}\n")
	b.WriteString("\\pgfplotsset{compat=1.16}\n\n")
	return b.String()
}

// texEscaper maps characters that are special in TeX text mode to their
// escaped forms. Math-mode dollars are left alone so labels may embed math.
var texEscaper = strings.NewReplacer(
	"%", "\\%",
	"#", "\\#",
	"&", "\\&",
	"_", "\\_",
)

// EscapeText escapes TeX-special characters in label text.
func EscapeText(text string) string {
	return texEscaper.Replace(text)
}
