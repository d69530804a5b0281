package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/database/entities"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/metrics"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// Repository persists message rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a message repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the message and bumps the owning conversation's recency
// marker inside one transaction: a failure on either side rolls both back.
// A duplicate idempotency key surfaces as CONFLICT.
func (r *Repository) Create(ctx context.Context, msg *domain.Message) error {
	entity, err := entities.NewSchemaMessage(msg)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to encode message attachments",
			err,
			"message-create-encode-error",
		)
	}
	if entity.PublicID == "" {
		entity.PublicID = fmt.Sprintf("msg_%s", uuid.NewString())
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entity).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Conversation{}).
			Where("id = ?", entity.ConversationID).
			Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"message already recorded for provider message id",
				err,
				"message-create-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"message-create-db-error",
		)
	}

	msg.ID = entity.ID
	msg.PublicID = entity.PublicID
	msg.CreatedAt = entity.CreatedAt

	metrics.RecordMessageIngested(string(msg.Direction), string(msg.Channel))
	return nil
}

// ExistsByProviderKey checks the inbound idempotency key.
func (r *Repository) ExistsByProviderKey(ctx context.Context, providerType, providerMessageID string) (bool, error) {
	if providerMessageID == "" {
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("provider_type = ? AND provider_message_id = ?", providerType, providerMessageID).
		Count(&count).Error; err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check provider message id",
			err,
			"message-exists-db-error",
		)
	}
	return count > 0, nil
}

// ListByConversation returns the thread ordered by sent_at ascending.
func (r *Repository) ListByConversation(ctx context.Context, conversationID uint) ([]domain.Message, error) {
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"message-list-db-error",
		)
	}

	messages := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, *row.EtoD())
	}
	return messages, nil
}
