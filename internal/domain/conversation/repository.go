package conversation

import "context"

// Repository persists conversations and their participant links.
type Repository interface {
	// FindByPair returns the conversation whose customer-role participant
	// and contact-role participant match the given contact ids, both
	// against the same conversation row. NOT_FOUND when no such thread
	// exists yet.
	FindByPair(ctx context.Context, customerContactID, contactContactID uint) (*Conversation, error)

	// CreateWithParticipants inserts the conversation and both participant
	// rows in one atomic unit. CONFLICT when another flow already created a
	// conversation for the same ordered pair.
	CreateWithParticipants(ctx context.Context, conv *Conversation) error

	FindByID(ctx context.Context, id uint) (*Conversation, error)

	// List returns summaries ordered by recency, most recent first.
	List(ctx context.Context) ([]Summary, error)
}
