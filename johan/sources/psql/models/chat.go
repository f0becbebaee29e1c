package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chat struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    int           `json:"user_id" gorm:"not null;index"`
	User      User          `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	AgentID   *uuid.UUID    `json:"agent_id,omitempty" gorm:"type:uuid"`
	Title     string        `json:"title" gorm:"type:varchar(255)"`
	Messages  []ChatMessage `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
