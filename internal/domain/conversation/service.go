package conversation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/contact"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// Resolver maps a (customer address, contact address) pair onto its single
// long-lived conversation, creating the thread on first contact.
type Resolver interface {
	ResolveOrCreate(ctx context.Context, customerAddress, contactAddress string) (uint, error)
	Get(ctx context.Context, id uint) (*Conversation, error)
	List(ctx context.Context) ([]Summary, error)
}

// DefaultResolver implements Resolver.
type DefaultResolver struct {
	repo     Repository
	contacts contact.Resolver
	log      zerolog.Logger
}

// NewResolver creates a conversation resolver.
func NewResolver(repo Repository, contacts contact.Resolver, log zerolog.Logger) *DefaultResolver {
	return &DefaultResolver{
		repo:     repo,
		contacts: contacts,
		log:      log.With().Str("component", "conversation_resolver").Logger(),
	}
}

// ResolveOrCreate returns the id of the conversation owned by the given
// pair. The lookup and creation form a check-then-act race under concurrent
// first contact; the store's unique index on the ordered pair guarantees a
// single winner, and losers recover by re-reading the winning row.
func (r *DefaultResolver) ResolveOrCreate(ctx context.Context, customerAddress, contactAddress string) (uint, error) {
	customer, err := r.contacts.Resolve(ctx, customerAddress, true)
	if err != nil {
		return 0, err
	}
	contactParty, err := r.contacts.Resolve(ctx, contactAddress, false)
	if err != nil {
		return 0, err
	}

	// The participant table keys on (conversation_id, contact_id), so a
	// thread between an address and itself cannot be represented.
	if customer.ID == contactParty.ID {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"customer and contact must be distinct addresses",
			nil,
			"conversation-resolve-self-pair",
		)
	}

	existing, err := r.repo.FindByPair(ctx, customer.ID, contactParty.ID)
	if err == nil {
		return existing.ID, nil
	}
	if !platformerrors.IsNotFound(err) {
		return 0, err
	}

	conv := NewConversation(customer.ID, contactParty.ID)
	if err := r.repo.CreateWithParticipants(ctx, conv); err == nil {
		r.log.Info().
			Uint("conversation_id", conv.ID).
			Str("public_id", conv.PublicID).
			Msg("conversation created")
		return conv.ID, nil
	} else if !platformerrors.IsConflict(err) {
		return 0, err
	}

	winner, err := r.repo.FindByPair(ctx, customer.ID, contactParty.ID)
	if err != nil {
		return 0, err
	}
	return winner.ID, nil
}

// Get fetches a conversation by id.
func (r *DefaultResolver) Get(ctx context.Context, id uint) (*Conversation, error) {
	return r.repo.FindByID(ctx, id)
}

// List returns recency-ordered conversation summaries.
func (r *DefaultResolver) List(ctx context.Context) ([]Summary, error) {
	return r.repo.List(ctx)
}
