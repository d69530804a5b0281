package handlers

import (
	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Message      *MessageHandler
	Webhook      *WebhookHandler
	Conversation *ConversationHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	ingester message.Ingester,
	resolver conversation.Resolver,
	selector *provider.Selector,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Message:      NewMessageHandler(ingester, selector, log),
		Webhook:      NewWebhookHandler(ingester, log),
		Conversation: NewConversationHandler(resolver, ingester, log),
	}
}
