package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"johan/johan/sources/psql/dao"
	"johan/johan/sources/psql/models"
	"johan/johan/utils/httputils"
	"johan/johan/utils/logging"
	"johan/johan/utils/types"

	"github.com/google/uuid"
)

var ErrChatNotFound = errors.New("chat not found or forbidden")

type ChatController struct {
	chatDAO       *dao.ChatDAO
	agentDAO      *dao.AgentDAO
	modelEndpoint string
}

func NewChatController(chatDAO *dao.ChatDAO, agentDAO *dao.AgentDAO, modelEndpoint string) *ChatController {
	return &ChatController{chatDAO: chatDAO, agentDAO: agentDAO, modelEndpoint: modelEndpoint}
}

func (c *ChatController) CreateChat(ctx context.Context, userID int, req types.CreateChatRequest) (*models.Chat, error) {
	if req.AgentID != nil {
		agent, err := c.agentDAO.GetAgentByID(ctx, *req.AgentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch agent: %w", err)
		}
		if agent == nil {
			return nil, fmt.Errorf("agent %s not found", req.AgentID)
		}
	}
	chat := &models.Chat{UserID: userID, Title: req.Title, AgentID: req.AgentID}
	if err := c.chatDAO.CreateChat(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

func (c *ChatController) ListChats(ctx context.Context, userID int) ([]models.Chat, error) {
	chats, err := c.chatDAO.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

func (c *ChatController) DeleteChat(ctx context.Context, userID int, chatID uuid.UUID) error {
	if _, err := c.ownedChat(ctx, userID, chatID); err != nil {
		return err
	}
	if err := c.chatDAO.DeleteChat(ctx, chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}

func (c *ChatController) GetMessages(ctx context.Context, userID int, chatID uuid.UUID) ([]models.ChatMessage, error) {
	if _, err := c.ownedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	msgs, err := c.chatDAO.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return msgs, nil
}

// SendMessage appends the user's message and, when the chat has an agent,
// runs the agent's model over the history and appends the reply.
func (c *ChatController) SendMessage(ctx context.Context, userID int, chatID uuid.UUID, req types.ChatRequest) (*types.ChatResponse, error) {
	chat, err := c.ownedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if _, err := c.chatDAO.AppendMessage(ctx, chatID, "user", req.Content); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	if chat.AgentID == nil {
		return &types.ChatResponse{ChatID: chatID.String()}, nil
	}

	agent, history, err := c.agentAndHistory(ctx, chat)
	if err != nil {
		return nil, err
	}
	llmReq := map[string]interface{}{
		"model":    agent.Model,
		"messages": history,
		"stream":   false,
	}
	var llmResp struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	}
	done := logging.LogDuration(ctx, "ChatController.SendMessage.model")
	err = httputils.PostJSON(c.modelEndpoint, llmReq, &llmResp)
	done()
	if err != nil {
		return nil, fmt.Errorf("failed to run agent model: %w", err)
	}
	content := llmResp.Message.Content
	if _, err := c.chatDAO.AppendMessage(ctx, chatID, "assistant", content); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	return &types.ChatResponse{ChatID: chatID.String(), Response: content}, nil
}

// SendMessageStream is the websocket variant: the reply streams chunk by
// chunk and is persisted once the model reports completion.
func (c *ChatController) SendMessageStream(ctx context.Context, userID int, chatID uuid.UUID, req types.ChatRequest) (chan string, chan error) {
	errCh := make(chan error, 1)
	ch := make(chan string)

	fail := func(err error) (chan string, chan error) {
		errCh <- err
		close(ch)
		close(errCh)
		return ch, errCh
	}

	chat, err := c.ownedChat(ctx, userID, chatID)
	if err != nil {
		return fail(err)
	}
	if chat.AgentID == nil {
		return fail(fmt.Errorf("chat %s has no agent to stream from", chatID))
	}
	if _, err := c.chatDAO.AppendMessage(ctx, chatID, "user", req.Content); err != nil {
		return fail(fmt.Errorf("failed to save message: %w", err))
	}
	agent, history, err := c.agentAndHistory(ctx, chat)
	if err != nil {
		return fail(err)
	}
	llmReq := map[string]interface{}{
		"model":    agent.Model,
		"messages": history,
		"stream":   true,
	}
	body, err := httputils.PostStream(ctx, c.modelEndpoint, llmReq)
	if err != nil {
		return fail(fmt.Errorf("failed to run agent model: %w", err))
	}

	go func() {
		defer logging.LogDuration(ctx, "ChatController.SendMessageStream.model")()
		defer close(ch)
		defer close(errCh)
		defer body.Close()
		scanner := bufio.NewScanner(body)
		var fullContent string
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			var chunk struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
				Done bool `json:"done"`
			}
			if err := json.Unmarshal([]byte(line), &chunk); err != nil {
				errCh <- err
				return
			}
			if chunk.Done {
				saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if _, err := c.chatDAO.AppendMessage(saveCtx, chatID, "assistant", fullContent); err != nil {
					errCh <- err
				}
				return
			}
			delta := chunk.Message.Content
			fullContent += delta
			// the reader may be gone; never block past cancellation
			select {
			case ch <- delta:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()

	return ch, errCh
}

// OwnedChat checks that the chat exists and belongs to the user. Other
// controllers (attachments) reuse it.
func (c *ChatController) OwnedChat(ctx context.Context, userID int, chatID uuid.UUID) (*models.Chat, error) {
	return c.ownedChat(ctx, userID, chatID)
}

func (c *ChatController) ownedChat(ctx context.Context, userID int, chatID uuid.UUID) (*models.Chat, error) {
	chat, err := c.chatDAO.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat: %w", err)
	}
	if chat == nil || chat.UserID != userID {
		return nil, ErrChatNotFound
	}
	return chat, nil
}

func (c *ChatController) agentAndHistory(ctx context.Context, chat *models.Chat) (*models.Agent, []map[string]string, error) {
	agent, err := c.agentDAO.GetAgentByID(ctx, *chat.AgentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch agent: %w", err)
	}
	if agent == nil {
		return nil, nil, fmt.Errorf("agent %s not found", chat.AgentID)
	}
	history, err := c.chatDAO.GetHistory(ctx, chat.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return agent, history, nil
}
