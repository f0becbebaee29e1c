// Package pkghost implements the host side of the Johan Chat package
// convention: manifests, route descriptors, lifecycle hooks, the registry
// that mounts active packages under /packages/<name>, and the loader that
// validates on-disk package directories.
package pkghost

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ManifestFile is the manifest's conventional filename inside a package dir.
const ManifestFile = "package.json"

// SchemaFile is the schema fragment's conventional filename.
const SchemaFile = "schema.prisma"

// Manifest is the package.json of a package.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Main        string `json:"main"`
}

var (
	nameRe    = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	versionRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)
)

// Validate checks the fields every manifest needs regardless of origin.
// Main is checked against the filesystem by the loader, not here, since
// built-in packages have no directory.
func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if !nameRe.MatchString(m.Name) {
		return fmt.Errorf("manifest: name %q must be a lowercase slug", m.Name)
	}
	if m.Version == "" {
		return fmt.Errorf("manifest: version is required")
	}
	if !versionRe.MatchString(m.Version) {
		return fmt.Errorf("manifest: version %q must be dotted numbers", m.Version)
	}
	return nil
}

// ReadManifest loads and validates a package.json from a package directory.
func ReadManifest(dir string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	if m.Main == "" {
		return m, fmt.Errorf("manifest: main is required")
	}
	// rejects absolute paths and ".." segments but keeps names like app..js
	if !filepath.IsLocal(m.Main) {
		return m, fmt.Errorf("manifest: main %q must be a relative path inside the package", m.Main)
	}
	if _, err := os.Stat(filepath.Join(dir, m.Main)); err != nil {
		return m, fmt.Errorf("manifest: main %q not found: %w", m.Main, err)
	}
	return m, nil
}
