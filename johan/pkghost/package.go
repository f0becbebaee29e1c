package pkghost

import "context"

// Package is what every Johan Chat package provides: a manifest and a route
// table. The remaining artifacts of the convention are optional and
// discovered by interface assertion.
type Package interface {
	Manifest() Manifest
	Routes() []Route
}

// Setuper is the activation hook of a package's entry module.
type Setuper interface {
	Setup(ctx context.Context) error
}

// Remover is the deactivation hook of a package's entry module.
type Remover interface {
	Remove(ctx context.Context) error
}

// SchemaProvider exposes the package's schema fragment text.
type SchemaProvider interface {
	Schema() string
}

// ModelProvider exposes gorm models the host migrates when the package is
// activated.
type ModelProvider interface {
	Models() []any
}
