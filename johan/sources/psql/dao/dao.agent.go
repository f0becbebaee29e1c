package dao

import (
	"context"

	"johan/johan/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentDAO struct {
	DB *gorm.DB
}

func NewAgentDAO(db *gorm.DB) *AgentDAO {
	return &AgentDAO{DB: db}
}

func (dao *AgentDAO) CreateAgent(ctx context.Context, agent *models.Agent) error {
	return dao.DB.WithContext(ctx).Create(agent).Error
}

func (dao *AgentDAO) GetAgentByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	var agent models.Agent
	err := dao.DB.WithContext(ctx).First(&agent, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (dao *AgentDAO) GetAllAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	err := dao.DB.WithContext(ctx).Order("created_at ASC").Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (dao *AgentDAO) UpdateAgent(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return dao.DB.WithContext(ctx).Model(&models.Agent{}).Where("id = ?", id).Updates(updates).Error
}

func (dao *AgentDAO) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	return dao.DB.WithContext(ctx).Delete(&models.Agent{}, "id = ?", id).Error
}
