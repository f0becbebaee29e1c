package pkghost

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"johan/johan/schema"
	"johan/johan/utils/logging"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// State tracks where a package is in its lifecycle.
type State string

const (
	StateRegistered State = "registered"
	StateActive     State = "active"
	StateInactive   State = "inactive"
)

type entry struct {
	pkg    Package
	mf     Manifest
	router chi.Router
	state  State
}

// Info is one row of the registry listing.
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	State       State  `json:"state"`
}

// Registry holds every registered package, owns the merged schema, and
// serves the routes of active packages. db may be nil (no migrations then).
type Registry struct {
	mu      sync.RWMutex
	db      *gorm.DB
	entries map[string]*entry
	order   []string
	merged  *schema.Merged
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:      db,
		entries: map[string]*entry{},
		merged:  schema.Baseline(),
	}
}

// Register validates the package's manifest, routes and schema fragment and
// adds it in state registered. Nothing is mounted or migrated yet.
func (rg *Registry) Register(pkg Package) error {
	mf := pkg.Manifest()
	if err := mf.Validate(); err != nil {
		return err
	}

	rg.mu.Lock()
	defer rg.mu.Unlock()

	if _, ok := rg.entries[mf.Name]; ok {
		return fmt.Errorf("package %s is already registered", mf.Name)
	}

	router := chi.NewRouter()
	seen := map[string]bool{}
	for _, rt := range pkg.Routes() {
		if err := rt.Validate(); err != nil {
			return fmt.Errorf("package %s: %w", mf.Name, err)
		}
		key := rt.Method + " " + rt.Path
		if seen[key] {
			return fmt.Errorf("package %s: duplicate route %s", mf.Name, key)
		}
		seen[key] = true
		router.Method(rt.Method, rt.Path, rt.Handler)
	}

	if sp, ok := pkg.(SchemaProvider); ok {
		frag, err := schema.Parse(mf.Name, sp.Schema())
		if err != nil {
			return fmt.Errorf("package %s: %w", mf.Name, err)
		}
		if err := rg.merged.Apply(frag); err != nil {
			return fmt.Errorf("package %s: %w", mf.Name, err)
		}
	}

	rg.entries[mf.Name] = &entry{pkg: pkg, mf: mf, router: router, state: StateRegistered}
	rg.order = append(rg.order, mf.Name)
	return nil
}

// Activate migrates the package's models, runs its Setup hook and starts
// serving its routes. A Setup failure leaves the package unmounted.
func (rg *Registry) Activate(ctx context.Context, name string) error {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	e, ok := rg.entries[name]
	if !ok {
		return fmt.Errorf("package %s is not registered", name)
	}
	if e.state == StateActive {
		return fmt.Errorf("package %s is already active", name)
	}

	if mp, ok := e.pkg.(ModelProvider); ok && rg.db != nil {
		if err := rg.db.WithContext(ctx).AutoMigrate(mp.Models()...); err != nil {
			return fmt.Errorf("package %s: failed to migrate models: %w", name, err)
		}
	}
	if s, ok := e.pkg.(Setuper); ok {
		if err := s.Setup(ctx); err != nil {
			return fmt.Errorf("package %s: setup failed: %w", name, err)
		}
	}

	e.state = StateActive
	logging.AppLogger.Info("package activated", zap.String("package", name), zap.String("version", e.mf.Version))
	return nil
}

// Deactivate runs the Remove hook and stops serving the package's routes.
// The package goes inactive even when Remove fails; the error still
// propagates to the caller.
func (rg *Registry) Deactivate(ctx context.Context, name string) error {
	rg.mu.Lock()
	e, ok := rg.entries[name]
	if !ok {
		rg.mu.Unlock()
		return fmt.Errorf("package %s is not registered", name)
	}
	if e.state != StateActive {
		rg.mu.Unlock()
		return fmt.Errorf("package %s is not active", name)
	}
	e.state = StateInactive
	rg.mu.Unlock()

	logging.AppLogger.Info("package deactivated", zap.String("package", name))
	if r, ok := e.pkg.(Remover); ok {
		if err := r.Remove(ctx); err != nil {
			return fmt.Errorf("package %s: remove failed: %w", name, err)
		}
	}
	return nil
}

// List reports every registered package in registration order.
func (rg *Registry) List() []Info {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	out := make([]Info, 0, len(rg.order))
	for _, name := range rg.order {
		e := rg.entries[name]
		out = append(out, Info{
			Name:        e.mf.Name,
			Version:     e.mf.Version,
			Description: e.mf.Description,
			State:       e.state,
		})
	}
	return out
}

// MergedSchema renders the baseline schema plus every registered fragment.
func (rg *Registry) MergedSchema() string {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.merged.Render()
}

// Handler serves active packages. Mount it at the namespace root, e.g.
// r.Mount("/packages", registry.Handler()); the first path segment selects
// the package, the rest is routed by the package's own table.
func (rg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// when mounted inside a chi router the unmatched remainder lives in
		// the route context, not in URL.Path
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
			path = rctx.RoutePath
		}
		name, rest := shiftPath(path)
		if name == "" {
			http.Error(w, "package name required", http.StatusNotFound)
			return
		}

		rg.mu.RLock()
		e, ok := rg.entries[name]
		active := ok && e.state == StateActive
		rg.mu.RUnlock()

		if !active {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}

		// drop any outer chi route context so the package router matches
		// against the namespace-relative path
		r2 := r.Clone(context.WithValue(r.Context(), chi.RouteCtxKey, nil))
		r2.URL.Path = rest
		e.router.ServeHTTP(w, r2)
	})
}

// shiftPath splits "/notes/abc" into "notes" and "/abc".
func shiftPath(p string) (head, rest string) {
	p = strings.TrimPrefix(p, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		return p[:i], p[i:]
	}
	return p, "/"
}
