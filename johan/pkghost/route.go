package pkghost

import (
	"fmt"
	"net/http"
	"strings"
)

// Route is one endpoint a package contributes. Path is relative to the
// package namespace: a notes package route with Path "/{note_id}" is served
// at /packages/notes/{note_id}.
type Route struct {
	Method      string
	Description string
	Path        string
	Handler     http.HandlerFunc
}

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

func (rt Route) Validate() error {
	if !allowedMethods[rt.Method] {
		return fmt.Errorf("route %s %s: method must be one of GET, POST, PUT, DELETE, PATCH", rt.Method, rt.Path)
	}
	if !strings.HasPrefix(rt.Path, "/") {
		return fmt.Errorf("route %s %s: path must start with /", rt.Method, rt.Path)
	}
	if rt.Handler == nil {
		return fmt.Errorf("route %s %s: handler is required", rt.Method, rt.Path)
	}
	return nil
}
