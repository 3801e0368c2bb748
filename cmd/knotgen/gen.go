package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

func genFacade(specPath, outPath string) error {
	if strings.TrimSpace(outPath) == "" {
		return fmt.Errorf("missing -out")
	}

	raw, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("read spec: %w", err)
	}

	var spec FacadeSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parse spec: %w", err)
	}

	applyConfigDefaults(&spec.Config)
	if err := validateFacadeSpec(&spec); err != nil {
		return err
	}

	if strings.TrimSpace(spec.FacadeName) == "" {
		spec.FacadeName = spec.WrapperBase + spec.VersionSuffix
	}
	if strings.TrimSpace(spec.PublicConstructorName) == "" {
		spec.PublicConstructorName = "New" + spec.WrapperBase + spec.VersionSuffix
	}
	if spec.InjectPolicy.OnOverwrite == "" {
		spec.InjectPolicy.OnOverwrite = "error"
	}

	// imports are optional:
	// - config import inferred only if spec.Config.Enabled
	// - di import always needed (BuildWith uses di.Registry)
	if err := inferFacadeImports(&spec, outPath); err != nil {
		return err
	}

	specHash := sha256Hex(raw)

	// deterministic ordering (hygiene)
	sort.Slice(spec.Required, func(i, j int) bool { return spec.Required[i].Name < spec.Required[j].Name })
	sort.Slice(spec.Optional, func(i, j int) bool { return spec.Optional[i].Name < spec.Optional[j].Name })
	sort.Slice(spec.Methods, func(i, j int) bool { return spec.Methods[i].Name < spec.Methods[j].Name })

	// Preserve imports from an existing generated file (keeps manually added imports)
	preserved := readImportsFromExistingOut(outPath)

	required := []GoImport{
		{Path: "fmt"},
		{Path: "strings"},
		{Name: "di", Path: spec.Imports.DI}, // always needed because BuildWith(reg di.Registry) exists
	}
	if spec.Config.Enabled {
		required = append(required, GoImport{Name: "config", Path: spec.Imports.Config})
	}

	// auto-import stdlib packages referenced by types in method signatures
	if methodUsesPkgQualifier(spec.Methods, "context") {
		required = append(required, GoImport{Path: "context"})
	}
	if methodUsesPkgQualifier(spec.Methods, "time") {
		required = append(required, GoImport{Path: "time"})
	}

	data := map[string]any{
		"Spec":     spec,
		"SpecPath": filepath.ToSlash(specPath),
		"SpecHash": specHash,
		"Imports":  mergeImports(required, preserved),
	}

	src, err := execTemplate(facadeTpl, data)
	if err != nil {
		return err
	}
	return writeFormatted(outPath, src)
}

func genGraph(specPath, outPath string) error {
	if strings.TrimSpace(outPath) == "" {
		return fmt.Errorf("missing -out")
	}

	raw, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("read graph spec: %w", err)
	}

	var g GraphSpec
	if err := json.Unmarshal(raw, &g); err != nil {
		return fmt.Errorf("parse graph spec: %w", err)
	}

	applyConfigDefaults(&g.Config)
	if err := validateGraphSpec(&g); err != nil {
		return err
	}

	if err := inferGraphImports(&g, outPath); err != nil {
		return err
	}

	graphHash := sha256Hex(raw)

	for i := range g.Roots {
		sort.Slice(g.Roots[i].Services, func(a, b int) bool { return g.Roots[i].Services[a].Var < g.Roots[i].Services[b].Var })
		sort.Slice(g.Roots[i].Wiring, func(a, b int) bool {
			wa := g.Roots[i].Wiring[a]
			wb := g.Roots[i].Wiring[b]
			return wa.To+wa.Call+wa.ArgFrom < wb.To+wb.Call+wb.ArgFrom
		})
	}
	sort.Slice(g.Roots, func(i, j int) bool { return g.Roots[i].Name < g.Roots[j].Name })

	preserved := readImportsFromExistingOut(outPath)

	required := []GoImport{
		{Path: "fmt"},
		{Name: "di", Path: g.Imports.DI},
	}
	if g.Config.Enabled {
		required = append(required, GoImport{Name: "config", Path: g.Imports.Config})
	}

	data := map[string]any{
		"G":         g,
		"GraphPath": filepath.ToSlash(specPath),
		"GraphHash": graphHash,
		"Imports":   mergeImports(required, preserved),
	}

	src, err := execTemplate(graphTpl, data)
	if err != nil {
		return err
	}
	return writeFormatted(outPath, src)
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func execTemplate(tpl *template.Template, data any) ([]byte, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return []byte(sb.String()), nil
}

// writeFormatted gofmts the source before writing. If formatting fails the raw
// source is still written so the failure can be inspected, and an error is returned.
func writeFormatted(out string, src []byte) error {
	fmtSrc, err := format.Source(src)
	if err != nil {
		_ = os.WriteFile(out, src, 0o644)
		return fmt.Errorf("gofmt/format failed: %w", err)
	}
	return os.WriteFile(out, fmtSrc, 0o644)
}

// exportName upper-cases the first rune for graph result fields (order -> Order).
func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// methodUsesPkgQualifier returns true if any method param/return contains "pkg."
func methodUsesPkgQualifier(methods []MethodSpec, pkg string) bool {
	needle := pkg + "."
	for _, m := range methods {
		for _, p := range m.Params {
			if strings.Contains(p.Type, needle) {
				return true
			}
		}
		for _, r := range m.Returns {
			if strings.Contains(r.Type, needle) {
				return true
			}
		}
	}
	return false
}
