package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/yama-bushi/messaging-service/internal/domain/provider"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/provider"
)

func sendViaStub(t *testing.T, handler http.HandlerFunc) domain.Outcome {
	t.Helper()
	server := httptest.NewServer(handler)
	defer server.Close()

	gateway := provider.NewSMSGateway(server.URL, 5*time.Second, zerolog.Nop())
	outcome, err := gateway.Send(context.Background(), domain.OutboundMessage{
		From:        "+12016661234",
		To:          "+18045551234",
		MessageType: "sms",
		Body:        "hello",
	})
	require.NoError(t, err, "outcomes are data, Send must not error on vendor status codes")
	return outcome
}

func TestSMSGateway_Send_Accepted(t *testing.T) {
	outcome := sendViaStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message_id": "vendor-abc"}`))
	})

	assert.Equal(t, domain.StatusSuccess, outcome.Status)
	assert.Equal(t, "vendor-abc", outcome.ProviderMessageID)
}

func TestSMSGateway_Send_RateLimited(t *testing.T) {
	outcome := sendViaStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	assert.Equal(t, domain.StatusRateLimited, outcome.Status)
	assert.Equal(t, 30*time.Second, outcome.RetryAfter)
}

func TestSMSGateway_Send_RateLimitedWithoutHint(t *testing.T) {
	outcome := sendViaStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	assert.Equal(t, domain.StatusRateLimited, outcome.Status)
	assert.Zero(t, outcome.RetryAfter)
}

func TestSMSGateway_Send_ServerErrorIsTemporary(t *testing.T) {
	outcome := sendViaStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assert.Equal(t, domain.StatusTemporaryFailure, outcome.Status)
}

func TestSMSGateway_Send_ClientErrorIsPermanent(t *testing.T) {
	outcome := sendViaStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid destination"}`))
	})

	assert.Equal(t, domain.StatusPermanentFailure, outcome.Status)
	assert.Contains(t, outcome.Reason, "invalid destination")
}

func TestSMSGateway_Send_TransportErrorIsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	gateway := provider.NewSMSGateway(server.URL, time.Second, zerolog.Nop())
	outcome, err := gateway.Send(context.Background(), domain.OutboundMessage{
		From: "+12016661234",
		To:   "+18045551234",
		Body: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTemporaryFailure, outcome.Status)
}

func TestLoopbackGateway_Send(t *testing.T) {
	gateway := provider.NewLoopbackGateway("sms")
	outcome, err := gateway.Send(context.Background(), domain.OutboundMessage{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, outcome.Status)
	assert.Contains(t, outcome.ProviderMessageID, "sms-")
}
