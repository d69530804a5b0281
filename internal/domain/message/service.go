package message

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/contact"
	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// InboundParams carries one provider webhook delivery. FromAddress is the
// external contact, ToAddress the customer: inbound traffic flows
// contact → customer.
type InboundParams struct {
	ProviderType      string
	ProviderMessageID string
	FromAddress       string
	ToAddress         string
	Channel           Channel
	Type              Type
	Body              string
	Attachments       []string
	SentAt            time.Time
}

// InboundResult reports what happened to one webhook delivery. A replayed
// delivery is a successful no-op, not an error: AlreadyProcessed is set and
// Message is nil.
type InboundResult struct {
	Message          *Message
	AlreadyProcessed bool
}

// OutboundParams carries one customer-initiated send. The caller has
// already invoked the provider gateway; Outcome is whatever it reported.
type OutboundParams struct {
	Channel     Channel
	Type        Type
	FromAddress string
	ToAddress   string
	Body        string
	Attachments []string
	SentAt      time.Time
	Outcome     provider.Outcome
}

// Ingester inserts message rows for inbound and outbound traffic, enforces
// inbound idempotency, and keeps conversation recency current.
type Ingester interface {
	IngestInbound(ctx context.Context, params InboundParams) (*InboundResult, error)
	IngestOutbound(ctx context.Context, params OutboundParams) (*Message, error)
	ListMessages(ctx context.Context, conversationID uint) ([]Message, error)
}

// DefaultIngester implements Ingester.
type DefaultIngester struct {
	repo          Repository
	conversations conversation.Resolver
	contacts      contact.Resolver
	log           zerolog.Logger
}

// NewIngester creates a message ingester.
func NewIngester(repo Repository, conversations conversation.Resolver, contacts contact.Resolver, log zerolog.Logger) *DefaultIngester {
	return &DefaultIngester{
		repo:          repo,
		conversations: conversations,
		contacts:      contacts,
		log:           log.With().Str("component", "message_ingester").Logger(),
	}
}

// IngestInbound records one webhook delivery. The idempotency check runs
// before any resolution so a replay leaves no partial writes behind; a
// concurrent replay that slips past the pre-check is caught by the store's
// partial unique index on the idempotency key and reported the same way.
func (i *DefaultIngester) IngestInbound(ctx context.Context, params InboundParams) (*InboundResult, error) {
	if err := validateChannelAndType(ctx, params.Channel, params.Type); err != nil {
		return nil, err
	}

	if params.ProviderMessageID != "" {
		exists, err := i.repo.ExistsByProviderKey(ctx, params.ProviderType, params.ProviderMessageID)
		if err != nil {
			return nil, err
		}
		if exists {
			i.log.Info().
				Str("provider_type", params.ProviderType).
				Str("provider_message_id", params.ProviderMessageID).
				Msg("duplicate webhook delivery ignored")
			return &InboundResult{AlreadyProcessed: true}, nil
		}
	}

	conversationID, err := i.conversations.ResolveOrCreate(ctx, params.ToAddress, params.FromAddress)
	if err != nil {
		return nil, err
	}

	from, err := i.contacts.Resolve(ctx, params.FromAddress, false)
	if err != nil {
		return nil, err
	}
	to, err := i.contacts.Resolve(ctx, params.ToAddress, true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &Message{
		ConversationID:    conversationID,
		Channel:           params.Channel,
		Type:              params.Type,
		Direction:         DirectionInbound,
		ProviderType:      params.ProviderType,
		ProviderMessageID: optionalString(params.ProviderMessageID),
		FromContactID:     from.ID,
		ToContactID:       to.ID,
		Body:              params.Body,
		Attachments:       params.Attachments,
		SentAt:            params.SentAt,
		ReceivedAt:        &now,
	}

	if err := i.repo.Create(ctx, msg); err != nil {
		if platformerrors.IsConflict(err) {
			return &InboundResult{AlreadyProcessed: true}, nil
		}
		return nil, err
	}

	return &InboundResult{Message: msg}, nil
}

// IngestOutbound records one customer-initiated send. The row is persisted
// whatever the provider reported, tagged with the outcome status: failed
// sends stay auditable. Recency advances only when the row persists.
func (i *DefaultIngester) IngestOutbound(ctx context.Context, params OutboundParams) (*Message, error) {
	if err := validateChannelAndType(ctx, params.Channel, params.Type); err != nil {
		return nil, err
	}

	conversationID, err := i.conversations.ResolveOrCreate(ctx, params.FromAddress, params.ToAddress)
	if err != nil {
		return nil, err
	}

	from, err := i.contacts.Resolve(ctx, params.FromAddress, true)
	if err != nil {
		return nil, err
	}
	to, err := i.contacts.Resolve(ctx, params.ToAddress, false)
	if err != nil {
		return nil, err
	}

	msg := &Message{
		ConversationID:    conversationID,
		Channel:           params.Channel,
		Type:              params.Type,
		Direction:         DirectionOutbound,
		ProviderType:      string(params.Channel),
		ProviderMessageID: optionalString(params.Outcome.ProviderMessageID),
		ProviderStatus:    params.Outcome.Status,
		FromContactID:     from.ID,
		ToContactID:       to.ID,
		Body:              params.Body,
		Attachments:       params.Attachments,
		SentAt:            params.SentAt,
	}

	if err := i.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if !params.Outcome.Status.IsSuccess() {
		i.log.Warn().
			Uint("conversation_id", conversationID).
			Str("provider_status", string(params.Outcome.Status)).
			Str("reason", params.Outcome.Reason).
			Msg("outbound send recorded with provider failure")
	}

	return msg, nil
}

// ListMessages returns the conversation thread in sent_at order.
func (i *DefaultIngester) ListMessages(ctx context.Context, conversationID uint) ([]Message, error) {
	return i.repo.ListByConversation(ctx, conversationID)
}

func validateChannelAndType(ctx context.Context, channel Channel, msgType Type) error {
	if !ValidTypeForChannel(channel, msgType) {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"unrecognized channel/type combination: "+string(channel)+"/"+string(msgType),
			nil,
			"message-ingest-invalid-channel",
		)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
