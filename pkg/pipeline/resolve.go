package pipeline

import (
	"context"
	"slices"

	"github.com/matzehuels/docgraph/pkg/apidoc"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/logging"
)

// resolveTargets maps target names and patterns to entities. Exact names
// win over patterns; unmatched targets are logged and skipped. The result
// keeps first-seen order and holds each entity once.
func resolveTargets(ctx context.Context, idx *apidoc.Index, targets []string) ([]*apidoc.Doc, error) {
	logger := logging.FromContext(ctx)

	var docs []*apidoc.Doc
	add := func(d *apidoc.Doc) {
		if !slices.Contains(docs, d) {
			docs = append(docs, d)
		}
	}

	for _, t := range targets {
		if d := idx.Lookup(t); d != nil {
			add(d)
			continue
		}
		matches, err := idx.Match(t)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "target %q", t)
		}
		if len(matches) == 0 {
			logger.Warn("Target matches no documented entity", "target", t)
			continue
		}
		for _, d := range matches {
			add(d)
		}
	}
	return docs, nil
}
