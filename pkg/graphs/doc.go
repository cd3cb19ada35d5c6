// Package graphs builds documentation diagrams from an API index.
//
// # Builders
//
// A [Builder] turns documentation entities into [dot.Graph] values:
//
//   - [Builder.PackageTree]: packages and all their submodules, either as a
//     plain tree or as nested UML package boxes (dot 2.0+)
//   - [Builder.ClassTree]: classes with all their subclasses and base
//     classes; the universal root object type is left out
//   - [Builder.ImportGraph]: which of the given modules import which
//   - [Builder.CallGraph]: routines with their profiled callers and callees
//
// All builders follow the same steps: collect the entity set by walking
// relationships from the seed entities, create one node per entity in name
// order, then add each relationship edge once, ordered by node ID. The same
// input therefore always yields the same DOT text.
//
// # Styling
//
// [StyleFor] is a pure function from an entity's [NodeKind], its label and
// URL, whether it is the entity the page documents ("current") and whether
// the renderer supports HTML-like labels. Modules become two-row package
// icons, routines rounded boxes with a "()" suffix, everything else plain
// boxes. The current entity is filled with [SelectedBG]. Every node gets an
// href, [NoopURL] when the entity has no page, so tooltips still show in
// browsers that only display them on links.
//
// # Degradation
//
// Builders never fail. A call graph requested without profiling data logs
// one warning and returns an empty "Call Graph"; a UML package tree
// requested from a dot older than 2.0 logs a warning and falls back to the
// plain tree.
//
//	b := graphs.NewBuilder(dot.NewContext(), idx, apidoc.NewPageLinker(idx), renderer.Version(ctx))
//	g := b.ClassTree(ctx, []*apidoc.Doc{idx.Lookup("epydoc.apidoc.APIDoc")}, graphs.Options{})
package graphs
