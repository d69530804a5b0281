package responses

import (
	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/message"
)

// Send statuses reported to clients. A send is accepted when the provider
// took the message; anything else is an error the client may retry or not,
// guided by provider_status.
const (
	SendStatusAccepted = "accepted"
	SendStatusError    = "error"
)

// SendMessageResponse is returned for outbound send requests. The message
// row persists whatever the provider reported, so MessageID is always set.
type SendMessageResponse struct {
	MessageID         string `json:"message_id"`
	ConversationID    uint   `json:"conversation_id"`
	ProviderMessageID string `json:"provider_message_id,omitempty"`
	ProviderStatus    string `json:"provider_status"`
	Status            string `json:"status"`
}

// WebhookAckResponse acknowledges an inbound webhook delivery. Replayed
// deliveries acknowledge with Duplicate set and no MessageID.
type WebhookAckResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// ConversationSummaryResponse represents one conversation in listings.
type ConversationSummaryResponse struct {
	ID          uint   `json:"id"`
	PublicID    string `json:"public_id"`
	LastUpdated int64  `json:"last_updated"`
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID                string   `json:"id"`
	ConversationID    uint     `json:"conversation_id"`
	Channel           string   `json:"channel"`
	Type              string   `json:"type"`
	Direction         string   `json:"direction"`
	ProviderType      string   `json:"provider_type"`
	ProviderMessageID *string  `json:"provider_message_id,omitempty"`
	ProviderStatus    string   `json:"provider_status,omitempty"`
	FromContactID     uint     `json:"from_contact_id"`
	ToContactID       uint     `json:"to_contact_id"`
	Body              string   `json:"body"`
	Attachments       []string `json:"attachments,omitempty"`
	SentAt            int64    `json:"sent_at"`
	ReceivedAt        *int64   `json:"received_at,omitempty"`
	CreatedAt         int64    `json:"created_at"`
}

// MapSendToResponse maps a persisted outbound message to the send payload.
func MapSendToResponse(m *message.Message) SendMessageResponse {
	status := SendStatusError
	if m.ProviderStatus.IsSuccess() {
		status = SendStatusAccepted
	}
	providerMessageID := ""
	if m.ProviderMessageID != nil {
		providerMessageID = *m.ProviderMessageID
	}
	return SendMessageResponse{
		MessageID:         m.PublicID,
		ConversationID:    m.ConversationID,
		ProviderMessageID: providerMessageID,
		ProviderStatus:    string(m.ProviderStatus),
		Status:            status,
	}
}

// MapSummaryToResponse maps a conversation summary to the listing payload.
func MapSummaryToResponse(s conversation.Summary) ConversationSummaryResponse {
	return ConversationSummaryResponse{
		ID:          s.ID,
		PublicID:    s.PublicID,
		LastUpdated: s.LastUpdated.Unix(),
	}
}

// MapMessageToResponse maps a domain message to the API payload.
func MapMessageToResponse(m *message.Message) MessageResponse {
	var receivedAt *int64
	if m.ReceivedAt != nil {
		unix := m.ReceivedAt.Unix()
		receivedAt = &unix
	}
	return MessageResponse{
		ID:                m.PublicID,
		ConversationID:    m.ConversationID,
		Channel:           string(m.Channel),
		Type:              string(m.Type),
		Direction:         string(m.Direction),
		ProviderType:      m.ProviderType,
		ProviderMessageID: m.ProviderMessageID,
		ProviderStatus:    string(m.ProviderStatus),
		FromContactID:     m.FromContactID,
		ToContactID:       m.ToContactID,
		Body:              m.Body,
		Attachments:       m.Attachments,
		SentAt:            m.SentAt.Unix(),
		ReceivedAt:        receivedAt,
		CreatedAt:         m.CreatedAt.Unix(),
	}
}
