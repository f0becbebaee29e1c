package pkghost

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLintValidPackage(t *testing.T) {
	dir := writePackageDir(t,
		`{"name":"notes","version":"1.0.0","description":"notes","main":"index.go"}`,
		map[string]string{
			"index.go":    "package notes\n",
			SchemaFile:    "model Note {\n  id String @id\n}\n",
			"services.go": "package notes\n",
		})
	rep := Lint(dir)
	if !rep.OK() {
		t.Errorf("expected clean report, got %v", rep.Problems)
	}
	if rep.Name != "notes" {
		t.Errorf("expected name notes, got %q", rep.Name)
	}
}

func TestLintWithoutSchemaFragment(t *testing.T) {
	dir := writePackageDir(t,
		`{"name":"linkpreview","version":"0.1","main":"index.go"}`,
		map[string]string{"index.go": "package linkpreview\n"})
	rep := Lint(dir)
	if !rep.OK() {
		t.Errorf("schema fragment is optional, got %v", rep.Problems)
	}
}

func TestLintReportsSchemaConflict(t *testing.T) {
	dir := writePackageDir(t,
		`{"name":"badpkg","version":"1.0.0","main":"index.go"}`,
		map[string]string{
			"index.go": "package badpkg\n",
			SchemaFile: "model User {\n  password Int\n}\n",
		})
	rep := Lint(dir)
	if rep.OK() {
		t.Fatal("expected problems")
	}
	if !strings.Contains(rep.Problems[0], "schema conflict") {
		t.Errorf("expected schema conflict problem, got %v", rep.Problems)
	}
}

func TestLintReportsManifestAndParseProblems(t *testing.T) {
	dir := writePackageDir(t,
		`{"name":"Bad Name","version":"1.0.0","main":"index.go"}`,
		map[string]string{
			"index.go": "package bad\n",
			SchemaFile: "not a schema\n",
		})
	rep := Lint(dir)
	if len(rep.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", rep.Problems)
	}
}

func TestScan(t *testing.T) {
	base := t.TempDir()

	good := filepath.Join(base, "notes")
	os.MkdirAll(good, 0o755)
	os.WriteFile(filepath.Join(good, ManifestFile),
		[]byte(`{"name":"notes","version":"1.0.0","main":"index.go"}`), 0o644)
	os.WriteFile(filepath.Join(good, "index.go"), []byte("package notes\n"), 0o644)

	bad := filepath.Join(base, "broken")
	os.MkdirAll(bad, 0o755)
	os.WriteFile(filepath.Join(bad, ManifestFile), []byte(`{`), 0o644)

	// no manifest: skipped
	os.MkdirAll(filepath.Join(base, "assets"), 0o755)
	// plain file at top level: skipped
	os.WriteFile(filepath.Join(base, "README.md"), []byte("x"), 0o644)

	reports, err := NewLoader(base).Scan()
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	byDir := map[string]Report{}
	for _, r := range reports {
		byDir[filepath.Base(r.Dir)] = r
	}
	if !byDir["notes"].OK() {
		t.Errorf("notes should lint clean: %v", byDir["notes"].Problems)
	}
	if byDir["broken"].OK() {
		t.Error("broken should report problems")
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope")).Scan(); err == nil {
		t.Error("expected error for missing packages dir")
	}
}
