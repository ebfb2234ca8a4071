package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iVampireSP/dochooks"
	"github.com/iVampireSP/dochooks/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// HookedPackage is a package and the annotated types found in it.
type HookedPackage struct {
	PkgPath string
	PkgName string
	Dir     string
	Types   []*HookedType // sorted by name
}

// HookedType is a named type with at least one annotated method.
type HookedType struct {
	Name     string
	Methods  []HookedMethod // sorted by name
	Position token.Position
}

// HookedMethod is an exported method and the annotations in its doc comment.
type HookedMethod struct {
	Name        string
	Annotations []dochooks.Annotation
	Position    token.Position
}

// Scanner discovers annotated methods by loading and analyzing Go packages.
type Scanner struct {
	cfg       *Config
	gitignore []GitignorePattern
	logger    *zap.Logger
	fset      *token.FileSet
}

// NewScanner creates a scanner.
func NewScanner(cfg *Config, gitignore []GitignorePattern, logger *zap.Logger) *Scanner {
	return &Scanner{
		cfg:       cfg,
		gitignore: gitignore,
		logger:    logger,
	}
}

// Scan loads the packages matching patterns and extracts their annotated types.
// Every loaded package is returned, including those without annotations, so
// that stale output can be removed.
func (s *Scanner) Scan(patterns ...string) ([]*HookedPackage, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	overlay, err := generatedOverlay(s.cfg.Root, s.cfg.Output)
	if err != nil {
		return nil, err
	}

	s.fset = token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:     s.cfg.Dir,
		Fset:    s.fset,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var loadErrs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	}
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(loadErrs, "\n  "))
	}

	var result []*HookedPackage
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		dir := filepath.Dir(pkg.GoFiles[0])
		if s.shouldExclude(dir) {
			s.logger.Debug("package excluded", zap.String("package", pkg.PkgPath))
			continue
		}

		hp, err := s.extractTypes(pkg)
		if err != nil {
			return nil, err
		}
		hp.Dir = dir
		result = append(result, hp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].PkgPath < result[j].PkgPath
	})
	return result, nil
}

// generatedOverlay replaces every previously generated output file under
// root with its package clause alone. Generated methods may refer to types
// that no longer exist, and go list compiles the files it is given.
func generatedOverlay(root, output string) (map[string][]byte, error) {
	overlay := make(map[string][]byte)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != output {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(src, []byte(generatedHeader)) {
			return nil
		}
		f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
		if err != nil {
			return nil
		}
		overlay[path] = fmt.Appendf(nil, "%s\n\npackage %s\n", generatedHeader, f.Name.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find generated files: %w", err)
	}
	return overlay, nil
}

// skipDir reports whether the go tool ignores a directory of this name.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// shouldExclude checks a package directory against exclude globs and .gitignore.
func (s *Scanner) shouldExclude(dir string) bool {
	rel, err := filepath.Rel(s.cfg.Root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	if rel == "." {
		return matchExclude(".", s.cfg.Exclude)
	}
	return matchExclude(rel, s.cfg.Exclude) || IsGitignored(rel, s.gitignore)
}

// extractTypes finds every named type in pkg whose pointer method set has
// annotated methods declared in this package, promoted ones included.
func (s *Scanner) extractTypes(pkg *packages.Package) (*HookedPackage, error) {
	hp := &HookedPackage{PkgPath: pkg.PkgPath, PkgName: pkg.Name}

	docs, declared, ignored := s.methodDocs(pkg)

	scope := pkg.Types.Scope()
	names := scope.Names()
	sort.Strings(names)

	for _, name := range names {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		if ignored[tn] {
			s.logger.Debug("type ignored", zap.String("type", name))
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}
		if _, isIface := named.Underlying().(*types.Interface); isIface {
			continue
		}

		methods := s.annotatedMethods(named, docs)
		if len(methods) == 0 {
			continue
		}
		if named.TypeParams().Len() > 0 {
			s.logger.Warn("generic types are not supported, skipping",
				zap.String("type", name),
				zap.Stringer("position", s.fset.Position(tn.Pos())))
			continue
		}
		if pos, ok := declared[tn]; ok {
			return nil, fmt.Errorf("%s: %s declares DocHooks itself; remove it or its annotations", pos, name)
		}

		hp.Types = append(hp.Types, &HookedType{
			Name:     name,
			Methods:  methods,
			Position: s.fset.Position(tn.Pos()),
		})
	}
	return hp, nil
}

// methodDocs maps every method declared in pkg to its doc comment text. It
// also records types that declare their own DocHooks method and types
// marked //dochooks:ignore.
func (s *Scanner) methodDocs(pkg *packages.Package) (
	docs map[*types.Func]string,
	declared map[*types.TypeName]token.Position,
	ignored map[*types.TypeName]bool,
) {
	docs = make(map[*types.Func]string)
	declared = make(map[*types.TypeName]token.Position)
	ignored = make(map[*types.TypeName]bool)

	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				for _, spec := range decl.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok || !HasDirective(typeDoc(decl, ts), DirectiveIgnore) {
						continue
					}
					if tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName); ok {
						ignored[tn] = true
					}
				}

			case *ast.FuncDecl:
				if decl.Recv == nil {
					continue
				}
				funcObj, ok := pkg.TypesInfo.Defs[decl.Name].(*types.Func)
				if !ok {
					continue
				}

				if decl.Name.Name == "DocHooks" {
					if tn := receiverTypeName(funcObj); tn != nil {
						declared[tn] = s.fset.Position(decl.Pos())
					}
				}
				if decl.Doc != nil && !HasDirective(decl.Doc, DirectiveIgnore) {
					docs[funcObj] = decl.Doc.Text()
				}
			}
		}
	}
	return docs, declared, ignored
}

// annotatedMethods walks the pointer method set of named and returns the
// exported methods whose doc comments carry annotations.
func (s *Scanner) annotatedMethods(named *types.Named, docs map[*types.Func]string) []HookedMethod {
	mset := types.NewMethodSet(types.NewPointer(named))

	var methods []HookedMethod
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() || fn.Name() == "DocHooks" {
			continue
		}

		annotations := dochooks.Match(docs[fn.Origin()])
		if len(annotations) == 0 {
			continue
		}

		pos := s.fset.Position(fn.Pos())
		s.logger.Log(logging.TraceLevel, "annotated method",
			zap.String("type", named.Obj().Name()),
			zap.String("method", fn.Name()),
			zap.Int("annotations", len(annotations)),
			zap.Stringer("position", pos))

		methods = append(methods, HookedMethod{
			Name:        fn.Name(),
			Annotations: annotations,
			Position:    pos,
		})
	}

	sort.Slice(methods, func(i, j int) bool {
		return methods[i].Name < methods[j].Name
	})
	return methods
}

// receiverTypeName returns the named type a method is declared on.
func receiverTypeName(fn *types.Func) *types.TypeName {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return nil
	}
	t := sig.Recv().Type()
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj()
	}
	return nil
}

// Annotations returns the number of annotations across the package.
func (p *HookedPackage) Annotations() int {
	n := 0
	for _, t := range p.Types {
		for _, m := range t.Methods {
			n += len(m.Annotations)
		}
	}
	return n
}
