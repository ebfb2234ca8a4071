package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/iVampireSP/dochooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDecls(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "x.go", src, parser.ParseComments)
	require.NoError(t, err)
	return f
}

func TestParseDirectives(t *testing.T) {
	f := parseDecls(t, `package x

// A is ignored.
//
//dochooks:ignore
//dochooks:unknown
func A() {}

// B mentions dochooks:ignore in prose only.
func B() {}

func C() {}
`)

	assert.Equal(t, []string{DirectiveIgnore}, ParseDirectives(f.Decls[0].(*ast.FuncDecl).Doc))
	assert.Empty(t, ParseDirectives(f.Decls[1].(*ast.FuncDecl).Doc))
	assert.Nil(t, ParseDirectives(f.Decls[2].(*ast.FuncDecl).Doc))

	assert.True(t, HasDirective(f.Decls[0].(*ast.FuncDecl).Doc, DirectiveIgnore))
	assert.False(t, HasDirective(f.Decls[1].(*ast.FuncDecl).Doc, DirectiveIgnore))
}

func TestTypeDoc(t *testing.T) {
	f := parseDecls(t, `package x

// Lone is ignored.
//
//dochooks:ignore
type Lone struct{}

// Group doc.
//
//dochooks:ignore
type (
	// Inner is documented.
	Inner struct{}
	Bare  struct{}
)
`)

	lone := f.Decls[0].(*ast.GenDecl)
	assert.True(t, HasDirective(typeDoc(lone, lone.Specs[0].(*ast.TypeSpec)), DirectiveIgnore))

	group := f.Decls[1].(*ast.GenDecl)
	assert.Equal(t, "Inner is documented.\n", typeDoc(group, group.Specs[0].(*ast.TypeSpec)).Text())
	assert.Nil(t, typeDoc(group, group.Specs[1].(*ast.TypeSpec)))
}

func TestNormalizeDoc(t *testing.T) {
	doc := "Title filters titles.\n\n@filter the_title\n@filter widget_title 5\n"
	assert.Equal(t, "@filter the_title\n@filter widget_title 5", normalizeDoc(dochooks.Match(doc)))
	assert.Empty(t, normalizeDoc(nil))
}
