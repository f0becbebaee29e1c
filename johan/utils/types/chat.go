package types

import "github.com/google/uuid"

type CreateChatRequest struct {
	Title   string     `json:"title"`
	AgentID *uuid.UUID `json:"agent_id,omitempty"`
}

type ChatRequest struct {
	Content string `json:"content"`
}

type ChatResponse struct {
	ChatID   string `json:"chat_id"`
	Response string `json:"response"`
}

type AttachmentResponse struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}
