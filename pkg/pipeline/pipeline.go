// Package pipeline turns graph directives into rendered documentation
// graphs.
//
// A run resolves each directive's targets against an [apidoc.Index],
// builds the graph, links its hrefs to documentation pages, renders the
// image, and writes an HTML fragment holding the image and its client-side
// image map. An index page listing every fragment finishes the run.
//
// # Usage
//
//	runner := pipeline.NewRunner(render.Chain{render.NewExec("dot"), render.NewEmbedded()})
//	res, err := runner.Execute(ctx, idx, []pipeline.Directive{
//	    {Kind: graphs.KindClassTree, Targets: []string{"epydoc.apidoc.APIDoc"}},
//	    {Kind: graphs.KindImportGraph, Targets: []string{"epydoc.*"}},
//	}, pipeline.Options{OutDir: "api/graphs"})
//
// Graph uids, and therefore file names, are unique within one run because
// every run starts a fresh [dot.Context].
//
// Rendering is best effort: a graph whose image cannot be produced is
// logged and recorded in [Output.Rendered], and the run continues.
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/docgraph/pkg/config"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/graphs"
)

// DefaultFormat is the image format used when Options.Format is empty.
const DefaultFormat = "png"

// IndexFile is the page that lists every graph of a run.
const IndexFile = "index.html"

// Directive asks for one graph.
type Directive struct {
	Kind graphs.Kind
	// Targets are dotted names or doublestar patterns over dotted names,
	// e.g. "epydoc.apidoc.APIDoc" or "epydoc.docwriter.**".
	Targets []string
	// Current names the entity whose page embeds the graph. Optional.
	Current string
	// Options are passed to the builder. Options.Current is filled from
	// Current.
	Options graphs.Options
	Caption string
}

// Validate checks the directive before any work is done.
func (d Directive) Validate() error {
	if _, err := graphs.ParseKind(string(d.Kind)); err != nil {
		return err
	}
	if len(d.Targets) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s: no targets", d.Kind)
	}
	if d.Current != "" {
		if err := errors.ValidateDottedName(d.Current); err != nil {
			return err
		}
	}
	return errors.ValidateDirection(d.Options.Dir)
}

// FromConfig converts a [[graph]] config entry.
func FromConfig(g config.GraphConfig) (Directive, error) {
	kind, err := graphs.ParseKind(g.Kind)
	if err != nil {
		return Directive{}, err
	}
	d := Directive{
		Kind:    kind,
		Targets: g.Targets,
		Current: g.Current,
		Caption: g.Caption,
		Options: graphs.Options{
			Dir:        strings.ToUpper(g.Dir),
			Style:      strings.ToLower(g.Style),
			AddCallers: g.AddCallers,
			AddCallees: g.AddCallees,
		},
	}
	return d, d.Validate()
}

// Options configure a run.
type Options struct {
	// OutDir receives images, fragments and the index page.
	OutDir string
	// Format is the image format, DefaultFormat when empty.
	Format string
	// Center wraps each fragment in <center>.
	Center bool
	// NoIndex skips writing IndexFile.
	NoIndex bool
}

func (o *Options) setDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	return errors.ValidateFormat(o.Format)
}

// Result describes a completed run.
type Result struct {
	// RunID identifies the run in logs.
	RunID   string
	Outputs []Output
	Stats   Stats
}

// Output is one generated graph.
type Output struct {
	Directive Directive
	UID       string
	Title     string
	Nodes     int
	Edges     int
	// Source, Image and Fragment are paths relative to Options.OutDir.
	Source   string
	Image    string
	Fragment string
	// Rendered is false when the renderer could not produce the image.
	Rendered bool
}

// Stats holds timing information for a run.
type Stats struct {
	BuildTime  time.Duration
	RenderTime time.Duration
	Skipped    int
}

// Rendered counts the outputs whose image was produced.
func (r *Result) Rendered() int {
	n := 0
	for _, o := range r.Outputs {
		if o.Rendered {
			n++
		}
	}
	return n
}
