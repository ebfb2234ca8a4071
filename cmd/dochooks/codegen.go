package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/tools/imports"
)

// generatedHeader marks files this tool owns. Only such files are
// overwritten or removed.
const generatedHeader = "// Code generated by dochooks. DO NOT EDIT."

// GeneratedFile is the output for one package.
type GeneratedFile struct {
	Path    string
	Content []byte
	Remove  bool // stale output of a package with no annotated types
}

// CodeGen renders DocHooks methods for scanned packages.
type CodeGen struct {
	cfg *Config
}

// NewCodeGen creates a code generator.
func NewCodeGen(cfg *Config) *CodeGen {
	return &CodeGen{cfg: cfg}
}

// Generate returns the files to write or remove. Packages without
// annotated types and without previous output produce nothing.
func (g *CodeGen) Generate(pkgs []*HookedPackage) ([]GeneratedFile, error) {
	var files []GeneratedFile
	for _, pkg := range pkgs {
		path := filepath.Join(pkg.Dir, g.cfg.Output)

		owned, exists, err := ownedByGenerator(path)
		if err != nil {
			return nil, err
		}
		if exists && !owned {
			return nil, fmt.Errorf("%s exists and was not generated by dochooks", path)
		}

		if len(pkg.Types) == 0 {
			if exists {
				files = append(files, GeneratedFile{Path: path, Remove: true})
			}
			continue
		}

		content, err := g.Render(pkg)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", pkg.PkgPath, err)
		}
		files = append(files, GeneratedFile{Path: path, Content: content})
	}
	return files, nil
}

// Render produces the formatted source for one package.
func (g *CodeGen) Render(pkg *HookedPackage) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n\n", generatedHeader)
	fmt.Fprintf(&buf, "package %s\n", pkg.PkgName)

	for _, t := range pkg.Types {
		fmt.Fprintf(&buf, "\n// DocHooks returns the hook annotations of %s's methods.\n", t.Name)
		fmt.Fprintf(&buf, "func (*%s) DocHooks() map[string]string {\n", t.Name)
		buf.WriteString("return map[string]string{\n")
		for _, m := range t.Methods {
			fmt.Fprintf(&buf, "%s: %s,\n", strconv.Quote(m.Name), strconv.Quote(normalizeDoc(m.Annotations)))
		}
		buf.WriteString("}\n}\n")
	}

	out, err := imports.Process(g.cfg.Output, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return out, nil
}

// ownedByGenerator reports whether path exists and starts with the
// generated header.
func ownedByGenerator(path string) (owned, exists bool, err error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read %s: %w", path, err)
	}
	return bytes.HasPrefix(content, []byte(generatedHeader)), true, nil
}
