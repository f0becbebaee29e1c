package routes

import (
	"net/http"

	"johan/johan/config"
	"johan/johan/controllers"
	"johan/johan/middlewares"

	"github.com/go-chi/chi/v5"
)

// PackagesRoutes is the admin API over the package registry.
func PackagesRoutes(ctrl *controllers.PackagesController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		return ctrl.List(r.Context()), http.StatusOK, nil
	}))

	r.Get("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(ctrl.MergedSchema(r.Context())))
	})

	r.Get("/scan", handleJSON(func(r *http.Request) (any, int, error) {
		reports, err := ctrl.Scan(r.Context())
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return reports, http.StatusOK, nil
	}))

	r.Post("/{name}/activate", func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Activate(r.Context(), chi.URLParam(r, "name")); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/{name}/deactivate", func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.Deactivate(r.Context(), chi.URLParam(r, "name")); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
