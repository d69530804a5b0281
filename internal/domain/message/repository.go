package message

import "context"

// Repository persists message rows.
type Repository interface {
	// Create inserts the message and advances the owning conversation's
	// recency marker in one atomic unit; nothing is retained when either
	// write fails. CONFLICT when the idempotency key (provider_type,
	// provider_message_id) is already taken.
	Create(ctx context.Context, msg *Message) error

	ExistsByProviderKey(ctx context.Context, providerType, providerMessageID string) (bool, error)

	// ListByConversation returns the thread in sent_at order. Thread order
	// is send time, not insertion time: concurrent inserts with
	// out-of-order timestamps must still sort correctly.
	ListByConversation(ctx context.Context, conversationID uint) ([]Message, error)
}
