package main

import (
	"go/ast"
	"slices"
	"strings"

	"github.com/iVampireSP/dochooks"
)

// Directive kinds
const (
	DirectiveIgnore = "ignore" // //dochooks:ignore
)

// ParseDirectives returns the kinds of the //dochooks: directives in a doc
// comment. Unknown kinds are dropped.
func ParseDirectives(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var kinds []string
	for _, comment := range doc.List {
		text, ok := strings.CutPrefix(comment.Text, "//dochooks:")
		if !ok {
			continue
		}

		switch kind := strings.TrimSpace(text); kind {
		case DirectiveIgnore:
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// HasDirective checks if a doc comment carries a directive of the given kind.
func HasDirective(doc *ast.CommentGroup, kind string) bool {
	return slices.Contains(ParseDirectives(doc), kind)
}

// typeDoc returns the doc comment of a type spec. A lone spec in a
// declaration has its comment attached to the GenDecl.
func typeDoc(decl *ast.GenDecl, spec *ast.TypeSpec) *ast.CommentGroup {
	if spec.Doc != nil {
		return spec.Doc
	}
	if !decl.Lparen.IsValid() {
		return decl.Doc
	}
	return nil
}

// normalizeDoc renders annotations one per line, in source order. This is
// the doc text written into the generated DocHooks method.
func normalizeDoc(annotations []dochooks.Annotation) string {
	lines := make([]string, len(annotations))
	for i, a := range annotations {
		lines[i] = a.String()
	}
	return strings.Join(lines, "\n")
}
