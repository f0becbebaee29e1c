package controllers

import (
	"context"
	"fmt"

	"johan/johan/sources/psql/dao"
	"johan/johan/sources/psql/models"
	"johan/johan/utils/types"

	"github.com/google/uuid"
)

type AgentController struct {
	agentDAO *dao.AgentDAO
}

func NewAgentController(agentDAO *dao.AgentDAO) *AgentController {
	return &AgentController{agentDAO: agentDAO}
}

func (c *AgentController) CreateAgent(ctx context.Context, req types.CreateAgentRequest) (*models.Agent, error) {
	if req.Name == "" || req.Model == "" {
		return nil, fmt.Errorf("agent name and model are required")
	}
	agent := &models.Agent{Name: req.Name, Model: req.Model, Tools: req.Tools}
	if err := c.agentDAO.CreateAgent(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return agent, nil
}

func (c *AgentController) GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	agent, err := c.agentDAO.GetAgentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agent: %w", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("agent %s not found", id)
	}
	return agent, nil
}

func (c *AgentController) GetAllAgents(ctx context.Context) ([]models.Agent, error) {
	agents, err := c.agentDAO.GetAllAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agents: %w", err)
	}
	return agents, nil
}

func (c *AgentController) UpdateAgent(ctx context.Context, id uuid.UUID, req types.UpdateAgentRequest) (*models.Agent, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if len(updates) > 0 {
		if err := c.agentDAO.UpdateAgent(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update agent: %w", err)
		}
	}
	if req.Tools != nil {
		agent, err := c.GetAgent(ctx, id)
		if err != nil {
			return nil, err
		}
		agent.Tools = *req.Tools
		if err := c.agentDAO.DB.WithContext(ctx).Save(agent).Error; err != nil {
			return nil, fmt.Errorf("failed to update agent tools: %w", err)
		}
	}
	return c.GetAgent(ctx, id)
}

func (c *AgentController) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	if err := c.agentDAO.DeleteAgent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	return nil
}
