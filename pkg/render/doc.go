// Package render runs Graphviz layouts.
//
// # Overview
//
// A [Renderer] turns DOT source into output bytes in a named Graphviz
// format ("gif", "png", "svg", "cmapx", ...) and reports the version of the
// layout engine behind it. Graph builders use the version to decide whether
// HTML-like labels are available (dot 2.0 and later).
//
// Implementations:
//
//   - [Exec]: runs the dot binary as a subprocess (see [RunDot])
//   - [Embedded]: in-process Graphviz via github.com/goccy/go-graphviz,
//     limited to svg, png and jpg (plus pdf through rsvg-convert)
//   - [Chain]: tries renderers in order, skipping ones that are unavailable
//     or do not support the format
//   - [Cached]: stores output in a [cache.Cache]
//
// The default stack built by the CLI is
//
//	render.NewCached(render.Chain{render.NewExec("dot"), render.NewEmbedded()}, c, keyer, ttl)
//
// # Errors
//
// Failures are reported as *errors.Error with codes from pkg/errors:
// TOOL_UNAVAILABLE when the binary cannot be found or started, TOOL_FAILED
// when it exits with an error, UNSUPPORTED_FORMAT when a renderer cannot
// produce the requested format. Diagnostics dot writes to stderr on success
// are logged as warnings through the logger in the context.
//
// Rendering is best-effort for a documentation run. The dot package turns
// every renderer error into a warning and an absent image.
//
// # Versions
//
// [Version] compares element by element, so Version{2, 43, 0} is at least
// Version{2} and the unknown version Version{0} is older than everything.
//
// [cache.Cache]: github.com/matzehuels/docgraph/pkg/cache.Cache
package render
