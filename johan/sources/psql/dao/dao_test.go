package dao

import (
	"context"
	"testing"

	"johan/johan/sources/psql/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Agent{}, &models.Chat{}, &models.ChatMessage{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUserDAO(t *testing.T) {
	db := setupTestDB(t)
	dao := NewUserDAO(db)
	ctx := context.Background()

	user := &models.User{Email: "johan@example.com", Name: "Johan", Password: "hashed"}
	if err := dao.CreateUser(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned id")
	}

	got, err := dao.GetUserByEmail(ctx, "johan@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("unexpected user: %+v", got)
	}

	missing, err := dao.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing user, got %+v", missing)
	}
}

func TestChatMessagesKeepOrder(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	chatDAO := NewChatDAO(db)
	ctx := context.Background()

	user := &models.User{Email: "a@example.com", Name: "A", Password: "x"}
	if err := userDAO.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	chat := &models.Chat{UserID: user.ID, Title: "first"}
	if err := chatDAO.CreateChat(ctx, chat); err != nil {
		t.Fatalf("create chat failed: %v", err)
	}

	for _, m := range []struct{ role, content string }{
		{"user", "hello"},
		{"assistant", "hi there"},
		{"user", "how are you"},
	} {
		if _, err := chatDAO.AppendMessage(ctx, chat.ID, m.role, m.content); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	history, err := chatDAO.GetHistory(ctx, chat.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	if history[0]["content"] != "hello" || history[2]["content"] != "how are you" {
		t.Errorf("history out of order: %v", history)
	}
	if history[1]["role"] != "assistant" {
		t.Errorf("expected assistant role, got %s", history[1]["role"])
	}
}

func TestDeleteChatRemovesMessages(t *testing.T) {
	db := setupTestDB(t)
	userDAO := NewUserDAO(db)
	chatDAO := NewChatDAO(db)
	ctx := context.Background()

	user := &models.User{Email: "b@example.com", Name: "B", Password: "x"}
	if err := userDAO.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	chat := &models.Chat{UserID: user.ID}
	if err := chatDAO.CreateChat(ctx, chat); err != nil {
		t.Fatalf("create chat failed: %v", err)
	}
	if _, err := chatDAO.AppendMessage(ctx, chat.ID, "user", "bye"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if err := chatDAO.DeleteChat(ctx, chat.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	gone, err := chatDAO.GetChatByID(ctx, chat.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gone != nil {
		t.Error("chat still present after delete")
	}
	msgs, err := chatDAO.GetMessages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("messages failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("messages still present after delete: %d", len(msgs))
	}
}

func TestAgentDAO(t *testing.T) {
	db := setupTestDB(t)
	dao := NewAgentDAO(db)
	ctx := context.Background()

	agent := &models.Agent{Name: "helper", Model: "gpt-oss:120b-cloud", Tools: []string{"notes", "linkpreview"}}
	if err := dao.CreateAgent(ctx, agent); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := dao.GetAgentByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || len(got.Tools) != 2 || got.Tools[1] != "linkpreview" {
		t.Errorf("tools not round-tripped: %+v", got)
	}

	if err := dao.UpdateAgent(ctx, agent.ID, map[string]interface{}{"name": "renamed"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ = dao.GetAgentByID(ctx, agent.ID)
	if got.Name != "renamed" {
		t.Errorf("expected renamed, got %s", got.Name)
	}

	if err := dao.DeleteAgent(ctx, agent.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	gone, _ := dao.GetAgentByID(ctx, agent.ID)
	if gone != nil {
		t.Error("agent still present after delete")
	}
}
