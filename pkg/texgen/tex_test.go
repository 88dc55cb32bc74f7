package texgen

import (
	"strings"
	"testing"
)

func TestEnvironmentNesting(t *testing.T) {
	var stack EnvStack
	var b strings.Builder

	b.WriteString(BeginEnvironment("tikzpicture", &stack, ""))
	b.WriteString(BeginEnvironment("axis", &stack, "xmin=0"))
	if stack.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", stack.Depth())
	}
	b.WriteString(EndAllEnvironments(&stack))

	got := b.String()
	want := "\\begin{tikzpicture}\n\\begin{axis}[\nxmin=0\n]\n\\end{axis}\n\\end{tikzpicture}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if stack.Depth() != 0 {
		t.Errorf("depth after EndAll = %d, want 0", stack.Depth())
	}
}

func TestEndEnvironmentEmptyStack(t *testing.T) {
	var stack EnvStack
	if got := EndEnvironment(&stack); got != "" {
		t.Errorf("ending an empty stack produced %q", got)
	}
}

func TestAddPlot(t *testing.T) {
	got := AddPlot("0 1\n", "table", "color=blue", false)
	want := "\\addplot+ [color=blue] table {%\n0 1\n};\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = AddPlot("(0,1)\n", "coordinates", "", true)
	want = "\\addplot coordinates {%\n(0,1)\n};\n"
	if got != want {
		t.Errorf("override form: got %q, want %q", got, want)
	}
}

func TestAddPlot3(t *testing.T) {
	got := AddPlot3("0 0 1\n", "table", "surf", true)
	if !strings.HasPrefix(got, "\\addplot3 [surf] table {%\n") {
		t.Errorf("got %q", got)
	}
}

func TestTextNode(t *testing.T) {
	got := TextNode("0.5", "0.9", "Title", "anchor=north", CoordRelative)
	want := "\\node[anchor=north] at (rel axis cs:0.5, 0.9) {Title};\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = TextNode("1", "2", "x", "", CoordAxis)
	if !strings.Contains(got, "(axis cs:1, 2)") {
		t.Errorf("axis coordinate system missing: %q", got)
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"50%", "50\\%"},
		{"a_b", "a\\_b"},
		{"A & B #1", "A \\& B \\#1"},
		{"$x^2$", "$x^2$"}, // math mode untouched
	}
	for _, tt := range tests {
		if got := EscapeText(tt.in); got != tt.want {
			t.Errorf("EscapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateDocument(t *testing.T) {
	doc := CreateDocument("article")
	for _, want := range []string{
		"\\documentclass{article}",
		"\\usepackage{pgfplots}",
		"\\usepgfplotslibrary{groupplots}",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document preamble missing %q", want)
		}
	}
}
