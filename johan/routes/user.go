package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"johan/johan/config"
	"johan/johan/controllers"
	"johan/johan/middlewares"
	"johan/johan/utils/types"

	"github.com/go-chi/chi/v5"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

func UserRoutes(ctrl *controllers.UserController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/fetch/{user_id}", handleJSON(func(r *http.Request) (any, int, error) {
			idStr := chi.URLParam(r, "user_id")
			id, err := strconv.Atoi(idStr)
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			user, err := ctrl.GetUser(r.Context(), id)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return user, http.StatusOK, nil
		}))

		gr.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
			id, ok := middlewares.UserID(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, nil
			}
			user, err := ctrl.GetUser(r.Context(), id)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return user, http.StatusOK, nil
		}))

		gr.Put("/me", handleJSON(func(r *http.Request) (any, int, error) {
			id, ok := middlewares.UserID(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, nil
			}
			var req types.UpdateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			user, err := ctrl.UpdateUser(r.Context(), id, req.Name, req.Email)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return user, http.StatusOK, nil
		}))

		gr.Get("/fetch", handleJSON(func(r *http.Request) (any, int, error) {
			users, err := ctrl.GetAllUsers(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return users, http.StatusOK, nil
		}))
	})

	return r
}
