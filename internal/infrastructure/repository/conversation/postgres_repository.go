package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/database/entities"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/metrics"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// Repository persists conversations and participant links.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a conversation repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByPair fetches the conversation whose customer-role and contact-role
// participants match the given contacts. Both joins constrain the same
// conversation row, so a pair only matches a thread holding both roles.
func (r *Repository) FindByPair(ctx context.Context, customerContactID, contactContactID uint) (*domain.Conversation, error) {
	var entity entities.Conversation
	err := r.db.WithContext(ctx).
		Joins(`JOIN conversation_participants cp_customer
			ON cp_customer.conversation_id = conversations.id
			AND cp_customer.contact_id = ? AND cp_customer.role = ?`,
			customerContactID, domain.RoleCustomer).
		Joins(`JOIN conversation_participants cp_contact
			ON cp_contact.conversation_id = conversations.id
			AND cp_contact.contact_id = ? AND cp_contact.role = ?`,
			contactContactID, domain.RoleContact).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"conversation not found for participant pair",
				nil,
				"conversation-find-by-pair-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation by pair",
			err,
			"conversation-find-by-pair-db-error",
		)
	}
	return entity.EtoD(), nil
}

// CreateWithParticipants inserts the conversation and both participant rows
// in one transaction. The unique index on the ordered contact pair turns a
// concurrent duplicate creation into a CONFLICT, which the resolver
// recovers from by re-reading.
func (r *Repository) CreateWithParticipants(ctx context.Context, conv *domain.Conversation) error {
	entity := entities.NewSchemaConversation(conv)
	if entity.PublicID == "" {
		entity.PublicID = fmt.Sprintf("conv_%s", uuid.NewString())
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"conversation already exists for participant pair",
				err,
				"conversation-create-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"conversation-create-db-error",
		)
	}

	conv.ID = entity.ID
	conv.PublicID = entity.PublicID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	for i := range entity.Participants {
		conv.Participants[i].ConversationID = entity.Participants[i].ConversationID
		conv.Participants[i].CreatedAt = entity.Participants[i].CreatedAt
	}

	metrics.RecordConversationCreated()
	return nil
}

// FindByID fetches a conversation with its participants.
func (r *Repository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("conversation not found: %d", id),
				nil,
				"conversation-find-by-id-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation",
			err,
			"conversation-find-by-id-db-error",
		)
	}
	return entity.EtoD(), nil
}

// List returns summaries ordered by recency. Recency is the updated_at
// marker bumped on every message commit, so ordering follows commit order,
// not sent_at.
func (r *Repository) List(ctx context.Context) ([]domain.Summary, error) {
	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"conversation-list-db-error",
		)
	}

	summaries := make([]domain.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.Summary{
			ID:          row.ID,
			PublicID:    row.PublicID,
			LastUpdated: row.UpdatedAt,
		}
	}
	return summaries, nil
}
