package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestInferFacadeImports_ConfigMatrix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		force   string
		initial string
		want    string
		wantErr string
	}{
		{name: "forced import wins", force: "example.com/forced/config", want: "example.com/forced/config"},
		{name: "scanned used when no force and empty", want: "example.com/proj/config"},
		{name: "keeps existing import if already set", initial: "example.com/already/config", want: "example.com/already/config"},
		{name: "fails if enabled and cannot infer and no config dir", wantErr: "cannot infer"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newPkg(t)
			writeDISource(p)

			if tc.wantErr == "" {
				writeConfigSource(p)
			} else {
				// go.mod exists but there is no ./config dir and no config import
				writeGoMod(p)
			}

			spec := validFacadeSpec()
			spec.Imports = Imports{Config: tc.initial}
			spec.Config = ConfigSpec{Enabled: true, Import: tc.force}

			err := inferFacadeImports(&spec, p.out("svc.gen.go"))
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("inferFacadeImports: %v", err)
			}
			if spec.Imports.Config != tc.want {
				t.Fatalf("Config import: got %q want %q", spec.Imports.Config, tc.want)
			}
			if spec.Imports.DI != "example.com/proj/di" {
				t.Fatalf("DI import: got %q want %q", spec.Imports.DI, "example.com/proj/di")
			}
		})
	}
}

func TestInferFacadeImports_ConfigDisabledClearsImport(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeDISource(p)

	spec := validFacadeSpec()
	spec.Imports = Imports{Config: "example.com/stale/config"}

	if err := inferFacadeImports(&spec, p.out("svc.gen.go")); err != nil {
		t.Fatalf("inferFacadeImports: %v", err)
	}
	if spec.Imports.Config != "" {
		t.Fatalf("config import should be cleared when disabled, got %q", spec.Imports.Config)
	}
}

func TestInferFacadeImports_ConfigFallbackToModule(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeDISource(p)
	writeGoMod(p)
	// ./config dir exists next to the out file
	p.write("config/config.go", "package config\n\ntype Config struct{}\n")

	spec := validFacadeSpec()
	spec.Config = ConfigSpec{Enabled: true}

	if err := inferFacadeImports(&spec, p.out("svc.gen.go")); err != nil {
		t.Fatalf("inferFacadeImports: %v", err)
	}
	if spec.Imports.Config != "example.com/proj/config" {
		t.Fatalf("Config import: got %q", spec.Imports.Config)
	}
}

func TestInferImports_DIFallsBackToGeneratorModule(t *testing.T) {
	t.Parallel()

	// no di import anywhere in the target package: the generator's own module
	// (this repository) supplies the runtime path
	p := newPkg(t)

	spec := validFacadeSpec()
	if err := inferFacadeImports(&spec, p.out("svc.gen.go")); err != nil {
		t.Fatalf("inferFacadeImports: %v", err)
	}
	if spec.Imports.DI != "github.com/amhaddad/knot/di" {
		t.Fatalf("DI import: got %q", spec.Imports.DI)
	}
}

func TestInferGraphImports(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeDISource(p)
	writeConfigSource(p)

	g := GraphSpec{
		Config: ConfigSpec{Enabled: true},
		Roots:  []GraphRoot{{Name: "R"}},
	}
	if err := inferGraphImports(&g, p.out("graph.gen.go")); err != nil {
		t.Fatalf("inferGraphImports: %v", err)
	}
	if g.Imports.Config != "example.com/proj/config" {
		t.Fatalf("Config import: got %q", g.Imports.Config)
	}
	if g.Imports.DI != "example.com/proj/di" {
		t.Fatalf("DI import: got %q", g.Imports.DI)
	}
}

func TestFindModule(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	writeGoMod(p)
	p.write("nested/deep/keep.go", "package deep\n")

	modRoot, modPath, err := findModule(filepath.Join(p.dir, "nested", "deep"))
	if err != nil {
		t.Fatalf("findModule: %v", err)
	}
	if modRoot != p.dir || modPath != "example.com/proj" {
		t.Fatalf("got root=%q path=%q", modRoot, modPath)
	}

	// empty module directive
	p2 := newPkg(t)
	p2.write("go.mod", "module \n")
	if _, _, err := findModule(p2.dir); err == nil {
		t.Fatal("want error for empty module path")
	}
}

func TestModuleImportPathForDir(t *testing.T) {
	t.Parallel()

	p := newPkg(t)

	got, err := moduleImportPathForDir(p.dir, "example.com/proj", p.dir)
	if err != nil || got != "example.com/proj" {
		t.Fatalf("root dir: got %q err=%v", got, err)
	}

	sub := filepath.Join(p.dir, "a", "b")
	got, err = moduleImportPathForDir(p.dir, "example.com/proj", sub)
	if err != nil || got != "example.com/proj/a/b" {
		t.Fatalf("sub dir: got %q err=%v", got, err)
	}

	outside := filepath.Dir(p.dir)
	if _, err := moduleImportPathForDir(p.dir, "example.com/proj", outside); err == nil {
		t.Fatal("want error for dir outside module root")
	}
}

func TestScanPackageImports_SkipsGeneratedAndTests(t *testing.T) {
	t.Parallel()

	p := newPkg(t)
	p.write("a.go", "package p\nimport _ \"example.com/real\"\n")
	p.write("a_test.go", "package p\nimport _ \"example.com/testonly\"\n")
	p.write("b.gen.go", "package p\nimport _ \"example.com/generated\"\n")
	p.write("broken.go", "package p\nimport (unterminated\n")

	got := scanPackageImports(p.dir)
	if len(got) != 1 || got[0].Path != "example.com/real" {
		t.Fatalf("scanned imports: %+v", got)
	}
}

func TestFindImportByAliasOrSuffix(t *testing.T) {
	t.Parallel()

	imports := []GoImport{
		{Name: "", Path: "example.com/proj/di"},
		{Name: "config", Path: "example.com/other/settings"},
	}

	gi, ok := findImportByAliasOrSuffix(imports, "config", "/config")
	if !ok || gi.Path != "example.com/other/settings" {
		t.Fatalf("alias match: %+v ok=%v", gi, ok)
	}

	gi, ok = findImportByAliasOrSuffix(imports, "di", "/di")
	if !ok || gi.Path != "example.com/proj/di" {
		t.Fatalf("suffix match: %+v ok=%v", gi, ok)
	}

	if _, ok := findImportByAliasOrSuffix(imports, "nope", "/nope"); ok {
		t.Fatal("unexpected match")
	}
}

func TestMergeImports_DedupesAndSorts(t *testing.T) {
	t.Parallel()

	merged := mergeImports(
		[]GoImport{{Path: "fmt"}, {Name: "di", Path: "example.com/proj/di"}},
		[]GoImport{{Path: "fmt"}, {Path: "context"}},
	)

	want := []GoImport{
		{Path: "context"},
		{Name: "di", Path: "example.com/proj/di"},
		{Path: "fmt"},
	}
	if len(merged) != len(want) {
		t.Fatalf("merged=%+v", merged)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Fatalf("merged[%d]=%+v want %+v", i, merged[i], want[i])
		}
	}
}
