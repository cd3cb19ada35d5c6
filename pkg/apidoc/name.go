package apidoc

import "strings"

// DottedName is a fully qualified name such as "epydoc.apidoc.APIDoc",
// stored as its identifiers.
type DottedName []string

// ParseName splits a dotted string into a DottedName.
// The empty string yields a nil name.
func ParseName(s string) DottedName {
	if s == "" {
		return nil
	}
	return DottedName(strings.Split(s, "."))
}

// String joins the identifiers with dots.
func (n DottedName) String() string {
	return strings.Join(n, ".")
}

// Last returns the final identifier, or "" for an empty name.
func (n DottedName) Last() string {
	if len(n) == 0 {
		return ""
	}
	return n[len(n)-1]
}

// Parent returns the name without its last identifier.
func (n DottedName) Parent() DottedName {
	if len(n) <= 1 {
		return nil
	}
	return n[:len(n)-1]
}

// Dominates reports whether n is a prefix of o (or equal to it), i.e. whether
// o lives inside the namespace named by n.
func (n DottedName) Dominates(o DottedName) bool {
	if len(n) == 0 || len(n) > len(o) {
		return false
	}
	for i := range n {
		if n[i] != o[i] {
			return false
		}
	}
	return true
}

// Contextualize shortens n relative to the context name by dropping the
// leading identifiers both names share. A name is never shortened below its
// last identifier, and an empty context leaves n unchanged.
//
//	ParseName("a.b.c").Contextualize(ParseName("a.b"))  // "c"
//	ParseName("a.b.c").Contextualize(ParseName("a.x"))  // "b.c"
//	ParseName("a.b").Contextualize(ParseName("a.b"))    // "b"
func (n DottedName) Contextualize(context DottedName) DottedName {
	for len(context) > 0 && len(n) > 1 && n[0] == context[0] {
		n, context = n[1:], context[1:]
	}
	return n
}

// Path converts the name to a slash-separated form ("a/b/c") so it can be
// matched with path glob patterns.
func (n DottedName) Path() string {
	return strings.Join(n, "/")
}
