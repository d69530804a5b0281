package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yama-bushi/messaging-service/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the messaging domain.
//
// The idempotency index on messages is partial (only rows that carry a
// provider_message_id participate), which gorm tags cannot express, so it
// is created with a raw statement after the table migration.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.Contact{},
		&entities.Conversation{},
		&entities.ConversationParticipant{},
		&entities.Message{},
	); err != nil {
		return err
	}

	if err := db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_messages_provider_type_message_id
		 ON messages (provider_type, provider_message_id)
		 WHERE provider_message_id IS NOT NULL`,
	).Error; err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
