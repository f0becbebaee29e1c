package dao

import (
	"context"

	"johan/johan/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatDAO struct {
	DB *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{DB: db}
}

func (dao *ChatDAO) CreateChat(ctx context.Context, chat *models.Chat) error {
	return dao.DB.WithContext(ctx).Create(chat).Error
}

func (dao *ChatDAO) GetChatByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := dao.DB.WithContext(ctx).First(&chat, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (dao *ChatDAO) ListChatsByUser(ctx context.Context, userID int) ([]models.Chat, error) {
	var chats []models.Chat
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (dao *ChatDAO) DeleteChat(ctx context.Context, id uuid.UUID) error {
	err := dao.DB.WithContext(ctx).Delete(&models.ChatMessage{}, "chat_id = ?", id).Error
	if err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Delete(&models.Chat{}, "id = ?", id).Error
}

// AppendMessage inserts one message. Messages are never updated afterwards.
func (dao *ChatDAO) AppendMessage(ctx context.Context, chatID uuid.UUID, role, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		ChatID:  chatID,
		Role:    role,
		Content: content,
	}
	if err := dao.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (dao *ChatDAO) GetMessages(ctx context.Context, chatID uuid.UUID) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := dao.DB.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// GetHistory returns role/content pairs in message order, the shape model
// endpoints expect.
func (dao *ChatDAO) GetHistory(ctx context.Context, chatID uuid.UUID) ([]map[string]string, error) {
	msgs, err := dao.GetMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	history := make([]map[string]string, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, map[string]string{"role": m.Role, "content": m.Content})
	}
	return history, nil
}
