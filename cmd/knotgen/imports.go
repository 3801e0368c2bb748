package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Import inference rules:
//
// (1) Config is optional:
//     - Only infer the config import if Config.Enabled=true.
// (2) Read needed imports from the original non-generated .go files in the target package dir.
// (3) The di runtime path comes from this generator's own go.mod (the knot module),
//     BUT project imports come from the project go.mod (nearest go.mod above the out dir).
//
// Notes:
// - For config: prefer a local-package import (config is part of the project).
// - For the di runtime: prefer a local-package import if present (lets a project
//   override/fork), otherwise compute it from the generator module via runtime.Caller.

func inferFacadeImports(s *FacadeSpec, outPath string) error {
	pkgDir := filepath.Dir(outPath)
	scanned := scanPackageImports(pkgDir)

	// --- CONFIG (optional) ---
	if s.Config.Enabled {
		// If the spec forced a config import, honor it.
		if strings.TrimSpace(s.Config.Import) != "" {
			s.Imports.Config = strings.TrimSpace(s.Config.Import)
		} else if strings.TrimSpace(s.Imports.Config) == "" {
			// Prefer whatever the project already uses in source files
			if gi, ok := findImportByAliasOrSuffix(scanned, "config", "/config"); ok {
				s.Imports.Config = gi.Path
			}
		}

		// Fallback: use the project go.mod if still missing
		if strings.TrimSpace(s.Imports.Config) == "" {
			path, err := configImportFromModule(pkgDir, "facade")
			if err != nil {
				return err
			}
			s.Imports.Config = path
		}
	} else {
		// config disabled: ensure empty so the template doesn't import it
		s.Imports.Config = ""
	}

	// --- DI (always needed because BuildWith(reg di.Registry) exists) ---
	if strings.TrimSpace(s.Imports.DI) == "" {
		if gi, ok := findImportByAliasOrSuffix(scanned, "di", "/di"); ok {
			s.Imports.DI = gi.Path
		} else {
			path, err := runtimeImportFromOwnModule("di")
			if err != nil {
				return err
			}
			s.Imports.DI = path
		}
	}
	return nil
}

func inferGraphImports(g *GraphSpec, outPath string) error {
	pkgDir := filepath.Dir(outPath)
	scanned := scanPackageImports(pkgDir)

	// CONFIG (optional)
	if g.Config.Enabled {
		if strings.TrimSpace(g.Config.Import) != "" {
			g.Imports.Config = strings.TrimSpace(g.Config.Import)
		} else if strings.TrimSpace(g.Imports.Config) == "" {
			if gi, ok := findImportByAliasOrSuffix(scanned, "config", "/config"); ok {
				g.Imports.Config = gi.Path
			}
		}

		if strings.TrimSpace(g.Imports.Config) == "" {
			path, err := configImportFromModule(pkgDir, "graph")
			if err != nil {
				return err
			}
			g.Imports.Config = path
		}
	} else {
		g.Imports.Config = ""
	}

	// DI (always needed because reg di.Registry exists in the root signature)
	if strings.TrimSpace(g.Imports.DI) == "" {
		if gi, ok := findImportByAliasOrSuffix(scanned, "di", "/di"); ok {
			g.Imports.DI = gi.Path
		} else {
			path, err := runtimeImportFromOwnModule("di")
			if err != nil {
				return err
			}
			g.Imports.DI = path
		}
	}
	return nil
}

// configImportFromModule computes <project pkg import>/config and verifies a
// ./config directory actually exists next to the output package.
func configImportFromModule(pkgDir, kind string) (string, error) {
	modRoot, modPath, err := findModule(pkgDir)
	if err != nil {
		return "", fmt.Errorf("cannot infer imports.config (%s): config enabled, but no config import in sources and cannot find project go.mod: %w", kind, err)
	}
	pkgImport, err := moduleImportPathForDir(modRoot, modPath, pkgDir)
	if err != nil || strings.TrimSpace(pkgImport) == "" {
		if err != nil {
			return "", fmt.Errorf("cannot infer imports.config (%s): cannot compute project pkg import for %s: %w", kind, filepath.ToSlash(pkgDir), err)
		}
		return "", fmt.Errorf("cannot infer imports.config (%s): cannot compute project pkg import for %s", kind, filepath.ToSlash(pkgDir))
	}
	if !dirExists(filepath.Join(pkgDir, "config")) {
		return "", fmt.Errorf("cannot infer imports.config (%s): config enabled but ./config directory not found in %s (and not imported in sources)", kind, filepath.ToSlash(pkgDir))
	}
	return pkgImport + "/config", nil
}

// runtimeImportFromOwnModule computes the import path for the di runtime package
// based on the go.mod of the module that contains this generator.
func runtimeImportFromOwnModule(runtimePkgRel string) (string, error) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("cannot infer di runtime import: runtime.Caller failed")
	}
	genDir := filepath.Dir(thisFile)

	modRoot, modPath, err := findModule(genDir)
	if err != nil {
		return "", fmt.Errorf("cannot infer di runtime import: cannot find go.mod for generator module: %w", err)
	}

	if strings.TrimSpace(runtimePkgRel) == "" {
		runtimePkgRel = "di"
	}

	runtimeAbs := filepath.Join(modRoot, filepath.FromSlash(runtimePkgRel))
	if !dirExists(runtimeAbs) {
		return "", fmt.Errorf("cannot infer di runtime import: expected runtime package dir at %s", filepath.ToSlash(runtimeAbs))
	}

	return modPath + "/" + filepath.ToSlash(runtimePkgRel), nil
}

// -------------------------
// go.mod helpers
// -------------------------

func findModule(startDir string) (modRoot string, modPath string, err error) {
	dir := startDir
	for {
		gomod := filepath.Join(dir, "go.mod")
		if fileExists(gomod) {
			b, rerr := os.ReadFile(gomod)
			if rerr != nil {
				return "", "", rerr
			}
			for _, ln := range strings.Split(string(b), "\n") {
				ln = strings.TrimSpace(ln)
				if strings.HasPrefix(ln, "module ") {
					mod := strings.TrimSpace(strings.TrimPrefix(ln, "module "))
					if mod == "" {
						return "", "", fmt.Errorf("go.mod has empty module path at %s", filepath.ToSlash(gomod))
					}
					return dir, mod, nil
				}
			}
			return "", "", fmt.Errorf("go.mod missing module directive at %s", filepath.ToSlash(gomod))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", "", fmt.Errorf("could not find go.mod starting from %s", filepath.ToSlash(startDir))
}

func moduleImportPathForDir(modRoot, modPath, dir string) (string, error) {
	rel, err := filepath.Rel(modRoot, dir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)

	if rel == "." {
		return modPath, nil
	}
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return "", fmt.Errorf("directory is outside module root: dir=%s modRoot=%s", filepath.ToSlash(dir), filepath.ToSlash(modRoot))
	}
	return modPath + "/" + rel, nil
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// -------------------------
// Scan "original" files imports in a package dir
// -------------------------

type GoImport struct {
	Name string // optional alias, e.g. "config"
	Path string // import path or stdlib package, e.g. "context"
}

// scanPackageImports reads imports from all non-generated .go files in pkgDir
// (excluding *_test.go and *.gen.go) and returns them as GoImport entries.
// It preserves aliases from source files (e.g. `config "..."`).
func scanPackageImports(pkgDir string) []GoImport {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return nil
	}

	var out []GoImport
	fset := token.NewFileSet()

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		// avoid feeding generated outputs back into inference
		if strings.HasSuffix(name, ".gen.go") || strings.Contains(name, ".gen.") || strings.HasSuffix(name, "_gen.go") {
			continue
		}

		full := filepath.Join(pkgDir, name)
		src, rerr := os.ReadFile(full)
		if rerr != nil {
			continue
		}

		f, perr := parser.ParseFile(fset, full, src, parser.ImportsOnly)
		if perr != nil {
			continue
		}

		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			alias := ""
			if imp.Name != nil {
				alias = imp.Name.Name
			}
			out = append(out, GoImport{Name: alias, Path: path})
		}
	}

	return dedupeAndSortImports(out)
}

// findImportByAliasOrSuffix picks an import from scanned imports.
// Prefer alias match first, then suffix match.
func findImportByAliasOrSuffix(imports []GoImport, preferAlias, preferSuffix string) (GoImport, bool) {
	if preferAlias != "" {
		for _, gi := range imports {
			if gi.Name == preferAlias {
				return gi, true
			}
		}
	}
	if preferSuffix != "" {
		for _, gi := range imports {
			if strings.HasSuffix(gi.Path, preferSuffix) {
				return gi, true
			}
		}
	}
	return GoImport{}, false
}

func dedupeAndSortImports(imps []GoImport) []GoImport {
	type key struct {
		path string
		name string
	}
	seen := map[key]bool{}
	out := make([]GoImport, 0, len(imps))
	for _, gi := range imps {
		k := key{path: gi.Path, name: gi.Name}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, gi)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// -------------------------
// Import preservation from an existing generated file
// -------------------------

func readImportsFromExistingOut(outPath string) []GoImport {
	if strings.TrimSpace(outPath) == "" {
		return nil
	}
	if _, err := os.Stat(outPath); err != nil {
		return nil
	}
	src, err := os.ReadFile(outPath)
	if err != nil {
		return nil
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, outPath, src, parser.ImportsOnly)
	if err != nil {
		return nil
	}

	out := make([]GoImport, 0, len(f.Imports))
	for _, imp := range f.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := ""
		if imp.Name != nil {
			name = imp.Name.Name
		}
		out = append(out, GoImport{Name: name, Path: path})
	}
	return out
}

func mergeImports(required []GoImport, preserved []GoImport) []GoImport {
	type key struct {
		path string
		name string
	}
	seen := map[key]GoImport{}
	add := func(gi GoImport) {
		k := key{path: gi.Path, name: gi.Name}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = gi
	}

	for _, gi := range required {
		add(gi)
	}
	for _, gi := range preserved {
		add(gi)
	}

	out := make([]GoImport, 0, len(seen))
	for _, gi := range seen {
		out = append(out, gi)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}
