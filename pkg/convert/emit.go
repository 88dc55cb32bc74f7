package convert

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tikzbridge/pkg/color"
	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/figure"
	"github.com/matzehuels/tikzbridge/pkg/layout"
	"github.com/matzehuels/tikzbridge/pkg/options"
	"github.com/matzehuels/tikzbridge/pkg/panel"
	"github.com/matzehuels/tikzbridge/pkg/texgen"
	"github.com/matzehuels/tikzbridge/pkg/trace"
)

const component = "convert"

// render runs the partition, layout and emit stages.
func render(fig *figure.Figure, opts Options) (string, []diag.Warning, int, error) {
	sink := diag.New()
	colors := color.NewSet()

	panels, geom, err := panel.Partition(fig, sink)
	if err != nil {
		return "", nil, 0, err
	}

	xb := boundsOf(fig.Layout.XAxis)
	yb := boundsOf(fig.Layout.YAxis)

	bodies := make([]string, len(panels))
	ctxs := make([]*trace.Context, len(panels))
	for i, p := range panels {
		ctxs[i] = &trace.Context{
			Panel: p, Colors: colors, Sink: sink, Geom: geom,
			XBounds: xb, YBounds: yb,
		}
		applyAxisSpec(p, fig.Layout)
		bodies[i] = panelBody(p, ctxs[i])
	}

	// Shapes draw over the first panel's coordinate system.
	if len(fig.Layout.Shapes) > 0 {
		var b strings.Builder
		b.WriteString(bodies[0])
		for _, sh := range fig.Layout.Shapes {
			b.WriteString(trace.Shape(sh, ctxs[0]))
		}
		bodies[0] = b.String()
	}

	// Title inference must run strictly after every option mutation
	// above: it consumes finalized panel state.
	consumed := panel.InferTitles(panels, geom, fig.Layout.Annotations, sink)

	annPanel := 0
	if geom.Multi() {
		// Group plot text nodes live in the picture frame anchored by
		// the last panel, so they must be emitted after it.
		annPanel = len(panels) - 1
	}
	annotated := false
	for i, a := range fig.Layout.Annotations {
		if consumed[i] {
			continue
		}
		node := trace.Annotation(a, ctxs[annPanel])
		if node == "" {
			continue
		}
		bodies[annPanel] += node
		annotated = true
	}
	if annotated {
		// Nodes may sit outside the axis box; clipping would cut them.
		for _, p := range panels {
			p.Options.Merge("clip", options.Text("false"), options.KeepExisting)
		}
	}

	for _, p := range panels {
		if p.Title != "" {
			p.Options.Set("title", options.Text(texgen.EscapeText(p.Title)))
		}
	}

	if t := fig.Layout.Legend.Title.Text; t != "" {
		bodies[0] = texgen.LegendImage("empty legend") +
			texgen.LegendEntry(texgen.EscapeText(t), "") +
			bodies[0]
	}

	code := assemble(panels, bodies, geom, colors, opts)
	return code, sink.Warnings(), len(panels), nil
}

// boundsOf lifts a declared axis range into resolver bounds.
func boundsOf(a figure.AxisSpec) layout.Bounds {
	if min, max, ok := a.Bounds(); ok {
		return layout.Bounds{Min: min, Max: max, Known: true}
	}
	return layout.Bounds{}
}

// applyAxisSpec maps the layout's axis declarations onto a panel's
// option store. An empty panel is rendered hidden over a unit box so the
// output stays compilable.
func applyAxisSpec(p *panel.Panel, l figure.Layout) {
	store := p.Options
	if p.XLabel != "" {
		store.Set("xlabel", options.Text(texgen.EscapeText(p.XLabel)))
	}
	if p.YLabel != "" {
		store.Set("ylabel", options.Text(texgen.EscapeText(p.YLabel)))
	}
	if min, max, ok := l.XAxis.Bounds(); ok {
		store.Set("xmin", options.Number(min))
		store.Set("xmax", options.Number(max))
	}
	if min, max, ok := l.YAxis.Bounds(); ok {
		store.Set("ymin", options.Number(min))
		store.Set("ymax", options.Number(max))
	}
	if l.XAxis.ShowGrid != nil && *l.XAxis.ShowGrid {
		store.Merge("xmajorgrids", options.Flag(), options.KeepExisting)
	}
	if l.YAxis.ShowGrid != nil && *l.YAxis.ShowGrid {
		store.Merge("ymajorgrids", options.Flag(), options.KeepExisting)
	}
	hidden := (l.XAxis.Visible != nil && !*l.XAxis.Visible) &&
		(l.YAxis.Visible != nil && !*l.YAxis.Visible)
	if hidden || p.Empty() {
		store.Merge("hide axis", options.Flag(), options.KeepExisting)
	}
	if p.Empty() {
		store.Merge("xmin", options.Number(0), options.KeepExisting)
		store.Merge("xmax", options.Number(1), options.KeepExisting)
		store.Merge("ymin", options.Number(0), options.KeepExisting)
		store.Merge("ymax", options.Number(1), options.KeepExisting)
	}
}

// panelBody converts every trace assigned to the panel, in figure order.
func panelBody(p *panel.Panel, ctx *trace.Context) string {
	var b strings.Builder
	for _, tr := range p.Traces {
		switch tr.Type {
		case "scatter", "scattergl", "":
			b.WriteString(trace.Scatter(tr, ctx))
		case "bar":
			b.WriteString(trace.Bar(tr, ctx))
		case "heatmap":
			b.WriteString(trace.Heatmap(tr, ctx))
		default:
			ctx.Sink.Warnf(component, "trace type %q is not supported; omitting trace %q", tr.Type, tr.Name)
		}
	}
	return b.String()
}

// assemble stitches color definitions, environments and panel bodies into
// the final markup.
func assemble(panels []*panel.Panel, bodies []string, geom layout.Geometry, colors *color.Set, opts Options) string {
	var b strings.Builder
	var stack texgen.EnvStack

	if !opts.NoDisclaimer {
		b.WriteString(texgen.Comment("This file was created with tikzbridge."))
	}
	if opts.Standalone {
		b.WriteString(texgen.CreateDocument(opts.DocumentClass))
		b.WriteString(texgen.BeginEnvironment("document", &stack, ""))
	}

	for _, d := range colors.Definitions() {
		b.WriteString(texgen.DefineColor(d.Name, d.Model, d.Components))
	}

	b.WriteString(texgen.BeginEnvironment("tikzpicture", &stack, opts.TikzOptions))
	if geom.Multi() {
		groupOpts := fmt.Sprintf("group style={group size=%d by %d}", geom.Cols, geom.Rows)
		b.WriteString(texgen.BeginEnvironment("groupplot", &stack, groupOpts))
		for i, p := range panels {
			fmt.Fprintf(&b, "\\nextgroupplot[\n%s\n]\n", panelOptions(p, opts))
			b.WriteString(bodies[i])
		}
	} else {
		b.WriteString(texgen.BeginEnvironment("axis", &stack, panelOptions(panels[0], opts)))
		b.WriteString(bodies[0])
	}
	b.WriteString(texgen.EndAllEnvironments(&stack))
	return b.String()
}

// panelOptions renders a panel's option block plus any caller extras.
func panelOptions(p *panel.Panel, opts Options) string {
	rendered := p.Options.Render()
	if len(opts.ExtraAxisOptions) == 0 {
		return rendered
	}
	extra := strings.Join(opts.ExtraAxisOptions, ",\n")
	if rendered == "" {
		return extra
	}
	return rendered + ",\n" + extra
}
