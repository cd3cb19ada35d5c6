// Package apidoc is the API-documentation model that docgraph's graph
// builders walk.
//
// # Overview
//
// A documentation generator for a reflective language collects modules,
// classes, routines and variables, each identified by a fully qualified
// [DottedName]. This package holds that information in a small, explicit
// form:
//
//   - [Doc]: one documented entity, with its [Kind] and its relationships
//     (submodules, base classes, subclasses, imports, members, values)
//   - [Index]: every entity by name, plus the optional caller/callee profile
//   - [PageLinker]: maps entity names to the URLs of their documentation pages
//
// The full object model of a documentation generator (docstrings, signatures,
// inheritance of documentation) is out of scope. Only the relationships the
// graph builders need are modelled.
//
// # Loading
//
// [Load] reads a model file in YAML, TOML or JSON form:
//
//	entities:
//	  - name: epydoc
//	    kind: module
//	    package: true
//	  - name: epydoc.apidoc
//	    kind: module
//	    imports: [epydoc.util]
//	  - name: epydoc.apidoc.APIDoc
//	    kind: class
//	    bases: [object]
//	calls:
//	  - caller: epydoc.cli.main
//	    callee: epydoc.docbuilder.build_doc_index
//
// Submodules, members and subclasses are derived from names and base lists, so
// a model only states each fact once.
package apidoc
