package controllers

import (
	"context"
	"fmt"

	"johan/johan/pkghost"
)

// PackagesController is the admin surface over the package registry and the
// on-disk packages directory.
type PackagesController struct {
	registry *pkghost.Registry
	loader   *pkghost.Loader
}

func NewPackagesController(registry *pkghost.Registry, loader *pkghost.Loader) *PackagesController {
	return &PackagesController{registry: registry, loader: loader}
}

func (c *PackagesController) List(ctx context.Context) []pkghost.Info {
	return c.registry.List()
}

func (c *PackagesController) Activate(ctx context.Context, name string) error {
	return c.registry.Activate(ctx, name)
}

func (c *PackagesController) Deactivate(ctx context.Context, name string) error {
	return c.registry.Deactivate(ctx, name)
}

func (c *PackagesController) MergedSchema(ctx context.Context) string {
	return c.registry.MergedSchema()
}

func (c *PackagesController) Scan(ctx context.Context) ([]pkghost.Report, error) {
	if c.loader == nil {
		return nil, fmt.Errorf("no packages directory configured")
	}
	reports, err := c.loader.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan packages: %w", err)
	}
	return reports, nil
}
