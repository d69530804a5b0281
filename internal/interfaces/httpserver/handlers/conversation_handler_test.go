package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

func setupConversationTestRouter(handler *handlers.ConversationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/conversations", handler.List)
		api.GET("/conversations/:id/messages", handler.ListMessages)
	}
	return r
}

func TestConversationHandler_List(t *testing.T) {
	now := time.Now().UTC()
	mockResolver := &MockConversationResolver{
		ListFunc: func(ctx context.Context) ([]conversation.Summary, error) {
			return []conversation.Summary{
				{ID: 2, PublicID: "conv_recent", LastUpdated: now},
				{ID: 1, PublicID: "conv_old", LastUpdated: now.Add(-time.Hour)},
			}, nil
		},
	}

	handler := handlers.NewConversationHandler(mockResolver, &MockIngester{}, zerolog.Nop())
	router := setupConversationTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/conversations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Conversations []struct {
			ID       uint   `json:"id"`
			PublicID string `json:"public_id"`
		} `json:"conversations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Conversations) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(response.Conversations))
	}
	if response.Conversations[0].PublicID != "conv_recent" {
		t.Errorf("Expected most recent conversation first, got %s", response.Conversations[0].PublicID)
	}
}

func TestConversationHandler_ListMessages(t *testing.T) {
	sentAt := time.Date(2024, 11, 1, 14, 0, 0, 0, time.UTC)
	mockResolver := &MockConversationResolver{
		GetFunc: func(ctx context.Context, id uint) (*conversation.Conversation, error) {
			return &conversation.Conversation{ID: id}, nil
		},
	}
	mockIngester := &MockIngester{
		ListMessagesFunc: func(ctx context.Context, conversationID uint) ([]message.Message, error) {
			return []message.Message{
				{PublicID: "msg_1", ConversationID: conversationID, Channel: message.ChannelSMS, Direction: message.DirectionInbound, Body: "hi", SentAt: sentAt},
				{PublicID: "msg_2", ConversationID: conversationID, Channel: message.ChannelSMS, Direction: message.DirectionOutbound, Body: "hello", SentAt: sentAt.Add(time.Minute)},
			}, nil
		},
	}

	handler := handlers.NewConversationHandler(mockResolver, mockIngester, zerolog.Nop())
	router := setupConversationTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/conversations/7/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Messages []struct {
			ID        string `json:"id"`
			Direction string `json:"direction"`
			SentAt    int64  `json:"sent_at"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(response.Messages))
	}
	if response.Messages[0].ID != "msg_1" {
		t.Errorf("Expected msg_1 first, got %s", response.Messages[0].ID)
	}
}

func TestConversationHandler_ListMessages_BadID(t *testing.T) {
	handler := handlers.NewConversationHandler(&MockConversationResolver{}, &MockIngester{}, zerolog.Nop())
	router := setupConversationTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/conversations/not-a-number/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestConversationHandler_ListMessages_NotFound(t *testing.T) {
	mockResolver := &MockConversationResolver{
		GetFunc: func(ctx context.Context, id uint) (*conversation.Conversation, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "test-conversation-not-found")
		},
	}

	handler := handlers.NewConversationHandler(mockResolver, &MockIngester{}, zerolog.Nop())
	router := setupConversationTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/conversations/99/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
