package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

type stubGateway struct {
	outcome provider.Outcome
	sent    []provider.OutboundMessage
}

func (g *stubGateway) Send(_ context.Context, msg provider.OutboundMessage) (provider.Outcome, error) {
	g.sent = append(g.sent, msg)
	return g.outcome, nil
}

func setupMessageTestRouter(handler *handlers.MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/messages")
	{
		api.POST("/sms", handler.SendSMS)
		api.POST("/email", handler.SendEmail)
	}
	return r
}

func postJSON(router *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMessageHandler_SendSMS_Accepted(t *testing.T) {
	gateway := &stubGateway{outcome: provider.Outcome{
		Status:            provider.StatusSuccess,
		ProviderMessageID: "vendor-abc",
	}}
	selector := provider.NewSelector(map[string]provider.Gateway{"sms": gateway})

	var captured message.OutboundParams
	mockIngester := &MockIngester{
		IngestOutboundFunc: func(ctx context.Context, params message.OutboundParams) (*message.Message, error) {
			captured = params
			id := params.Outcome.ProviderMessageID
			return &message.Message{
				PublicID:          "msg_abc",
				ConversationID:    5,
				ProviderMessageID: &id,
				ProviderStatus:    params.Outcome.Status,
			}, nil
		},
	}

	handler := handlers.NewMessageHandler(mockIngester, selector, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	w := postJSON(router, "/api/messages/sms", map[string]interface{}{
		"from":      "+12016661234",
		"to":        "+18045551234",
		"type":      "sms",
		"body":      "Hello! This is a test message.",
		"timestamp": "2024-11-01T14:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(gateway.sent) != 1 {
		t.Fatalf("Expected one provider send, got %d", len(gateway.sent))
	}
	if captured.Outcome.Status != provider.StatusSuccess {
		t.Errorf("Expected success outcome recorded, got %v", captured.Outcome.Status)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["status"] != "accepted" {
		t.Errorf("Expected status 'accepted', got %v", response["status"])
	}
	if response["provider_message_id"] != "vendor-abc" {
		t.Errorf("Expected provider_message_id 'vendor-abc', got %v", response["provider_message_id"])
	}
}

func TestMessageHandler_SendSMS_ProviderFailureStillRecorded(t *testing.T) {
	gateway := &stubGateway{outcome: provider.Outcome{
		Status: provider.StatusPermanentFailure,
		Reason: "invalid destination",
	}}
	selector := provider.NewSelector(map[string]provider.Gateway{"sms": gateway})

	ingestCalled := false
	mockIngester := &MockIngester{
		IngestOutboundFunc: func(ctx context.Context, params message.OutboundParams) (*message.Message, error) {
			ingestCalled = true
			return &message.Message{
				PublicID:       "msg_abc",
				ConversationID: 5,
				ProviderStatus: params.Outcome.Status,
			}, nil
		},
	}

	handler := handlers.NewMessageHandler(mockIngester, selector, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	w := postJSON(router, "/api/messages/sms", map[string]interface{}{
		"from":      "+12016661234",
		"to":        "+18045551234",
		"type":      "sms",
		"body":      "Hello!",
		"timestamp": "2024-11-01T14:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !ingestCalled {
		t.Fatal("Failed sends must still be recorded")
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["status"] != "error" {
		t.Errorf("Expected status 'error', got %v", response["status"])
	}
	if response["provider_status"] != "permanent_failure" {
		t.Errorf("Expected provider_status 'permanent_failure', got %v", response["provider_status"])
	}
}

func TestMessageHandler_SendEmail(t *testing.T) {
	gateway := &stubGateway{outcome: provider.Outcome{
		Status:            provider.StatusSuccess,
		ProviderMessageID: "vendor-email-1",
	}}
	selector := provider.NewSelector(map[string]provider.Gateway{"email": gateway})

	var captured message.OutboundParams
	mockIngester := &MockIngester{
		IngestOutboundFunc: func(ctx context.Context, params message.OutboundParams) (*message.Message, error) {
			captured = params
			return &message.Message{PublicID: "msg_abc", ConversationID: 2, ProviderStatus: params.Outcome.Status}, nil
		},
	}

	handler := handlers.NewMessageHandler(mockIngester, selector, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	w := postJSON(router, "/api/messages/email", map[string]interface{}{
		"from":      "user@usehatchapp.com",
		"to":        "contact@gmail.com",
		"body":      "<html><body>Hello</body></html>",
		"timestamp": "2024-11-01T14:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured.Channel != message.ChannelEmail {
		t.Errorf("Expected email channel, got %v", captured.Channel)
	}
	if captured.Type != message.TypeEmail {
		t.Errorf("Expected email type, got %v", captured.Type)
	}
}

func TestMessageHandler_SendMMSWithAttachments(t *testing.T) {
	gateway := &stubGateway{outcome: provider.Outcome{Status: provider.StatusSuccess}}
	selector := provider.NewSelector(map[string]provider.Gateway{"sms": gateway})

	mockIngester := &MockIngester{
		IngestOutboundFunc: func(ctx context.Context, params message.OutboundParams) (*message.Message, error) {
			return &message.Message{PublicID: "msg_abc", ProviderStatus: params.Outcome.Status}, nil
		},
	}

	handler := handlers.NewMessageHandler(mockIngester, selector, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	w := postJSON(router, "/api/messages/sms", map[string]interface{}{
		"from":        "+12016661234",
		"to":          "+18045551234",
		"type":        "mms",
		"body":        "picture attached",
		"attachments": []string{"https://example.com/image.jpg"},
		"timestamp":   "2024-11-01T14:00:00Z",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(gateway.sent) != 1 || len(gateway.sent[0].Attachments) != 1 {
		t.Error("Expected attachment forwarded to the provider")
	}
}

func TestMessageHandler_MissingBodyRejected(t *testing.T) {
	selector := provider.NewSelector(map[string]provider.Gateway{
		"sms": &stubGateway{outcome: provider.Outcome{Status: provider.StatusSuccess}},
	})
	handler := handlers.NewMessageHandler(&MockIngester{}, selector, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	w := postJSON(router, "/api/messages/sms", map[string]interface{}{
		"from":      "+12016661234",
		"to":        "+18045551234",
		"type":      "sms",
		"timestamp": "2024-11-01T14:00:00Z",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
