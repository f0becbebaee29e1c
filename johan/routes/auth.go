package routes

import (
	"encoding/json"
	"net/http"

	"johan/johan/controllers"
	"johan/johan/utils/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		user, err := ctrl.Register(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return user, http.StatusCreated, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		token, err := ctrl.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if err == controllers.ErrInvalidCredentials {
				return nil, http.StatusUnauthorized, err
			}
			return nil, http.StatusInternalServerError, err
		}
		return types.TokenResponse{Token: token}, http.StatusOK, nil
	}))

	return r
}
