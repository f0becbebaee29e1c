package controllers

import (
	"context"
	"fmt"
	"io"

	"johan/johan/sources/storage"
	"johan/johan/utils/types"

	"github.com/google/uuid"
)

type UploadController struct {
	store    *storage.MinIOClient
	chatCtrl *ChatController
}

func NewUploadController(store *storage.MinIOClient, chatCtrl *ChatController) *UploadController {
	return &UploadController{store: store, chatCtrl: chatCtrl}
}

// UploadAttachment stores a file against a chat the user owns and returns
// the object key plus a short-lived download URL.
func (c *UploadController) UploadAttachment(ctx context.Context, userID int, chatID uuid.UUID, filename, contentType string, r io.Reader, size int64) (*types.AttachmentResponse, error) {
	if _, err := c.chatCtrl.OwnedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	key, err := c.store.UploadAttachment(ctx, chatID, filename, contentType, r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	url, err := c.store.PresignAttachment(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to presign attachment: %w", err)
	}
	return &types.AttachmentResponse{Key: key, URL: url}, nil
}
