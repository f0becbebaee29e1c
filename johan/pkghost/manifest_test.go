package pkghost

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManifestValidate(t *testing.T) {
	cases := []struct {
		name string
		mf   Manifest
		want string // empty means valid
	}{
		{"valid", Manifest{Name: "notes", Version: "1.0.0"}, ""},
		{"valid short version", Manifest{Name: "notes", Version: "2"}, ""},
		{"missing name", Manifest{Version: "1.0.0"}, "name is required"},
		{"uppercase name", Manifest{Name: "Notes", Version: "1.0.0"}, "lowercase slug"},
		{"leading dash", Manifest{Name: "-notes", Version: "1.0.0"}, "lowercase slug"},
		{"missing version", Manifest{Name: "notes"}, "version is required"},
		{"bad version", Manifest{Name: "notes", Version: "v1.0"}, "dotted numbers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mf.Validate()
			if tc.want == "" {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func writePackageDir(t *testing.T, manifest string, extra map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if manifest != "" {
		if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range extra {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestReadManifest(t *testing.T) {
	dir := writePackageDir(t, `{"name":"notes","version":"1.0.0","description":"notes for chats","main":"index.go"}`,
		map[string]string{"index.go": "package notes\n"})
	mf, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if mf.Name != "notes" || mf.Main != "index.go" {
		t.Errorf("unexpected manifest: %+v", mf)
	}
}

func TestReadManifestAllowsDottedFilenames(t *testing.T) {
	dir := writePackageDir(t, `{"name":"notes","version":"1.0.0","main":"app..js"}`,
		map[string]string{"app..js": "// entry\n"})
	mf, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if mf.Main != "app..js" {
		t.Errorf("unexpected main: %q", mf.Main)
	}
}

func TestReadManifestErrors(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
		extra    map[string]string
		want     string
	}{
		{"missing file", "", nil, "failed to read manifest"},
		{"malformed json", `{"name":`, nil, "failed to parse manifest"},
		{"missing main", `{"name":"notes","version":"1.0.0"}`, nil, "main is required"},
		{"absolute main", `{"name":"notes","version":"1.0.0","main":"/etc/passwd"}`, nil, "relative path"},
		{"traversal main", `{"name":"notes","version":"1.0.0","main":"../outside.go"}`, nil, "relative path"},
		{"nested traversal main", `{"name":"notes","version":"1.0.0","main":"sub/../../outside.go"}`, nil, "relative path"},
		{"main not found", `{"name":"notes","version":"1.0.0","main":"index.go"}`, nil, "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writePackageDir(t, tc.manifest, tc.extra)
			_, err := ReadManifest(dir)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
