// Package tsparse adapts tree-sitter grammars to the cst model.
package tsparse

import (
	"bytes"
	"context"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"svfmt/internal/cst"
	"svfmt/internal/diag"
	"svfmt/internal/source"
)

type Options struct {
	MaxDiagnostics int
	File           source.FileID
}

// C parses C sources with the tree-sitter C grammar.
type C struct {
	Opts Options
}

var _ cst.Parser = C{}

func (p C) Parse(src []byte) (*cst.Node, *diag.Bag, error) {
	return p.ParseContext(context.Background(), src)
}

// ParseContext parses src; error and missing nodes are kept in the tree and
// reported as warnings.
func (p C) ParseContext(ctx context.Context, src []byte) (*cst.Node, *diag.Bag, error) {
	return parse(ctx, c.GetLanguage(), src, p.Opts)
}

func parse(ctx context.Context, lang *sitter.Language, src []byte, opts Options) (*cst.Node, *diag.Bag, error) {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		return nil, nil, fmt.Errorf("tsparse: source too large: %w", err)
	}
	if at := bytes.IndexByte(src, 0); at >= 0 {
		return verbatim(src, at, opts), nil
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("tsparse: %w", err)
	}
	defer tree.Close()

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	root, err := convert(tree.RootNode(), opts.File, rep)
	if err != nil {
		return nil, nil, err
	}
	bag.Sort()
	return root, bag, nil
}

// verbatim wraps src in one ERROR node. Tree-sitter stops lexing at a NUL
// byte, so such sources are not parsed at all.
func verbatim(src []byte, nul int, opts Options) (*cst.Node, *diag.Bag) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	end := uint32(len(src)) //nolint:gosec // checked by parse
	at := uint32(nul)       //nolint:gosec // nul < len(src)
	diag.Warn(diag.BagReporter{Bag: bag}, diag.SynUnparseable,
		source.Span{File: opts.File, Start: at, End: at + 1}, "NUL byte in source; file left unformatted")
	root := &cst.Node{Kind: "translation_unit", End: end, Named: true}
	root.Children = []*cst.Node{{Kind: cst.KindError, End: end, Named: true}}
	return root, bag
}

// convert copies a tree-sitter subtree; the result does not reference the
// tree-sitter tree, which is freed by the caller.
func convert(n *sitter.Node, file source.FileID, rep diag.Reporter) (*cst.Node, error) {
	out := &cst.Node{
		Kind:    cst.Kind(n.Type()),
		Start:   n.StartByte(),
		End:     n.EndByte(),
		Named:   n.IsNamed(),
		Missing: n.IsMissing(),
	}
	sp := source.Span{File: file, Start: out.Start, End: out.End}
	switch {
	case out.Missing:
		out.End = out.Start
		sp.End = sp.Start
		diag.Warn(rep, diag.SynTreeSitterError, sp, "missing "+string(out.Kind))
	case out.Kind == cst.KindError:
		diag.Warn(rep, diag.SynUnparseable, sp, "region left unformatted")
	}

	count, err := safecast.Conv[int](n.ChildCount())
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return out, nil
	}
	out.Children = make([]*cst.Node, 0, count)
	for i := range count {
		child, err := convert(n.Child(i), file, rep)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}
