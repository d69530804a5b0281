//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yama-bushi/messaging-service/internal/config"
	"github.com/yama-bushi/messaging-service/internal/domain/contact"
	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/database"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/logger"
	contactrepo "github.com/yama-bushi/messaging-service/internal/infrastructure/repository/contact"
	conversationrepo "github.com/yama-bushi/messaging-service/internal/infrastructure/repository/conversation"
	messagerepo "github.com/yama-bushi/messaging-service/internal/infrastructure/repository/message"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

var messagingSet = wire.NewSet(
	contactrepo.NewRepository,
	wire.Bind(new(contact.Repository), new(*contactrepo.Repository)),
	conversationrepo.NewRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.Repository)),
	messagerepo.NewRepository,
	wire.Bind(new(message.Repository), new(*messagerepo.Repository)),
	contact.NewResolver,
	wire.Bind(new(contact.Resolver), new(*contact.DefaultResolver)),
	conversation.NewResolver,
	wire.Bind(new(conversation.Resolver), new(*conversation.DefaultResolver)),
	message.NewIngester,
	wire.Bind(new(message.Ingester), new(*message.DefaultIngester)),
	newSelector,
	handlers.NewProvider,
)

// BuildApplication demonstrates how to assemble the messaging service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		messagingSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newSelector(cfg *config.Config, log zerolog.Logger) *provider.Selector {
	return provider.NewSelector(map[string]provider.Gateway{
		string(message.ChannelSMS):   newGateway(string(message.ChannelSMS), cfg.SMSProviderURL, cfg.ProviderTimeout, log),
		string(message.ChannelEmail): newGateway(string(message.ChannelEmail), cfg.EmailProviderURL, cfg.ProviderTimeout, log),
	})
}
