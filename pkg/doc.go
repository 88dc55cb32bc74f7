// Package pkg provides the core libraries for tikzbridge figure conversion.
//
// # Overview
//
// tikzbridge transforms declarative chart descriptions (traces, axes,
// annotations, shapes) into TikZ/pgfplots markup that compiles inside a
// LaTeX document. The pkg directory is organized into four main areas:
//
//  1. [figure] - The input chart model and its JSON/YAML decoders
//  2. [panel], [layout] - Panel partitioning, coordinate resolution, subgrid search
//  3. [trace], [mesh], [color] - Per-trace converters and their helpers
//  4. [options], [texgen] - The per-panel option store and markup emission
//  5. [convert] - Orchestration (partition → layout → emit) plus caching
//
// # Architecture
//
// The typical data flow through tikzbridge:
//
//	JSON/YAML figure description
//	         ↓
//	    [figure] package (decode into the chart model)
//	         ↓
//	    [panel] package (partition traces, derive grid geometry)
//	         ↓
//	    [trace] + [layout] packages (convert traces, resolve positions)
//	         ↓
//	    [convert] package (assemble environments and options)
//	         ↓
//	    TikZ/pgfplots markup
//
// # Quick Start
//
// Read a figure and convert it to markup:
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/matzehuels/tikzbridge/pkg/convert"
//	    "github.com/matzehuels/tikzbridge/pkg/figure"
//	)
//
//	fig, err := figure.ReadFile("figure.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := convert.Convert(fig, convert.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Code)
//
// # Main Packages
//
// ## Chart Model
//
// [figure] - The decoded chart: traces, layout, axis specs, annotations and
// shapes. Accepts JSON and YAML, with a tolerant title decoder (scalar or
// object) and a tri-state datum type (number, text, null).
//
// ## Layout
//
// [panel] - Splits traces into panels by axis anchor, derives the canvas
// geometry from declared grid rows/columns or a 1×N fallback, and infers
// panel titles from paper-anchored annotations.
//
// [layout] - Coordinate frame resolution (relative, absolute, pixel) and the
// lazy backtracking subgrid search used for title inference. Positions are
// emitted either numerically or as pgfplots axis-limit expressions.
//
// ## Trace Conversion
//
// [trace] - One converter per trace family: scatter (markers, lines, dashes),
// bar (categorical ticks, orientation, error bars), heatmap (flat-corner
// surface plots) plus shapes and free annotations.
//
// [mesh] - Rasterizes a value matrix into the duplicated epsilon-skirt point
// grid heatmaps plot with shader=flat corner.
//
// [color] - Collects color definitions in first-use order and converts CSS
// style colors (hex, rgb, rgba) into TeX-safe definitions.
//
// ## Emission
//
// [options] - Insertion-ordered option store with merge semantics (keep
// existing, take incoming, list concatenation) backing every axis and plot
// option block.
//
// [texgen] - Low-level markup builder: environment stack, \addplot forms,
// color definitions, legend entries, text nodes and escaping.
//
// ## Infrastructure
//
// [convert] - The complete conversion pipeline used by the CLI. The Runner
// adds content-addressed caching on top of Convert.
//
// [cache] - Cache interface with file-backed and null implementations. Keys
// are derived from a sha256 of the raw figure plus the rendering options.
//
// [diag] - Ordered warning sink threaded through the pipeline. Recoverable
// input defects become warnings on the result instead of errors.
//
// [errors] - Code-typed errors shared across packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/trace/...     # Specific package
//
// [figure]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/figure
// [panel]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/panel
// [layout]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/layout
// [trace]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/trace
// [mesh]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/mesh
// [color]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/color
// [options]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/options
// [texgen]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/texgen
// [convert]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/convert
// [cache]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/cache
// [diag]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/diag
// [errors]: https://pkg.go.dev/github.com/matzehuels/tikzbridge/pkg/errors
package pkg
