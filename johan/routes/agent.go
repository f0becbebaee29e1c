package routes

import (
	"encoding/json"
	"net/http"

	"johan/johan/config"
	"johan/johan/controllers"
	"johan/johan/middlewares"
	"johan/johan/utils/types"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func AgentRoutes(ctrl *controllers.AgentController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.CreateAgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		agent, err := ctrl.CreateAgent(r.Context(), req)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return agent, http.StatusCreated, nil
	}))

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		agents, err := ctrl.GetAllAgents(r.Context())
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return agents, http.StatusOK, nil
	}))

	r.Get("/{agent_id}", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := uuid.Parse(chi.URLParam(r, "agent_id"))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		agent, err := ctrl.GetAgent(r.Context(), id)
		if err != nil {
			return nil, http.StatusNotFound, err
		}
		return agent, http.StatusOK, nil
	}))

	r.Put("/{agent_id}", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := uuid.Parse(chi.URLParam(r, "agent_id"))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		var req types.UpdateAgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		agent, err := ctrl.UpdateAgent(r.Context(), id, req)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return agent, http.StatusOK, nil
	}))

	r.Delete("/{agent_id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "agent_id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := ctrl.DeleteAgent(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
