package pkghost

import (
	"fmt"
	"os"
	"path/filepath"

	"johan/johan/schema"
)

// Report is the lint result for one package directory.
type Report struct {
	Dir      string   `json:"dir"`
	Name     string   `json:"name,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Lint validates one package directory against the convention: a readable
// package.json, an existing main file, and a schema.prisma (when present)
// that parses and merges cleanly onto the host baseline.
func Lint(dir string) Report {
	rep := Report{Dir: dir}

	mf, err := ReadManifest(dir)
	if err != nil {
		rep.Problems = append(rep.Problems, err.Error())
	} else {
		rep.Name = mf.Name
	}

	schemaPath := filepath.Join(dir, SchemaFile)
	data, err := os.ReadFile(schemaPath)
	if os.IsNotExist(err) {
		return rep
	}
	if err != nil {
		rep.Problems = append(rep.Problems, fmt.Sprintf("failed to read %s: %v", SchemaFile, err))
		return rep
	}

	source := rep.Name
	if source == "" {
		source = filepath.Base(dir)
	}
	frag, err := schema.Parse(source, string(data))
	if err != nil {
		rep.Problems = append(rep.Problems, err.Error())
		return rep
	}
	if err := schema.Baseline().Apply(frag); err != nil {
		rep.Problems = append(rep.Problems, err.Error())
	}
	return rep
}

// Loader scans a directory of installed packages.
type Loader struct {
	baseDir string
}

func NewLoader(baseDir string) *Loader {
	return &Loader{baseDir: baseDir}
}

// Scan lints every subdirectory carrying a package.json. Directories without
// a manifest are skipped; an unreadable base directory is the only hard
// error.
func (l *Loader) Scan() ([]Report, error) {
	dirEntries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read packages dir: %w", err)
	}

	var reports []Report
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		dir := filepath.Join(l.baseDir, de.Name())
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
			continue
		}
		reports = append(reports, Lint(dir))
	}
	return reports, nil
}
