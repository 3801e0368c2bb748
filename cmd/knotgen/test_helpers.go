package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type pkgHarness struct {
	t   *testing.T
	dir string
}

func newPkg(t *testing.T) *pkgHarness {
	t.Helper()
	return &pkgHarness{t: t, dir: t.TempDir()}
}

func (p *pkgHarness) write(rel, content string) string {
	p.t.Helper()
	path := filepath.Join(p.dir, rel)
	mustWriteFile(p.t, path, content)
	return path
}

func (p *pkgHarness) out(rel string) string {
	return filepath.Join(p.dir, rel)
}

func (p *pkgHarness) read(rel string) string {
	p.t.Helper()
	return mustReadString(p.t, filepath.Join(p.dir, rel))
}

func writeDISource(p *pkgHarness) {
	p.write("di.go", `package p
import di "example.com/proj/di"
func _() { _ = di.Registry(nil) }`)
}

func writeConfigSource(p *pkgHarness) {
	p.write("cfg.go", `package p
import config "example.com/proj/config"
var _ = config.Config{}`)
}

func writeGoMod(p *pkgHarness) {
	p.write("go.mod", "module example.com/proj\n\ngo 1.25\n")
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustReadString(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func assertContainsInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(s[pos:], p)
		if i < 0 {
			t.Fatalf("expected to find %q after pos=%d", p, pos)
		}
		pos += i + len(p)
	}
}

// minimal valid facade spec used across tests; callers tweak fields as needed
func validFacadeSpec() FacadeSpec {
	return FacadeSpec{
		Package:       "p",
		WrapperBase:   "Users",
		VersionSuffix: "V4",
		ImplType:      "UsersImpl",
		Constructor:   "NewUsersImpl",
		Required: []RequiredDep{
			{Name: "Mailer", Field: "mailer", Type: "Mailer", Nilable: true},
			{Name: "Store", Field: "store", Type: "*Store", Nilable: true},
		},
	}
}
