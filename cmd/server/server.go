package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yama-bushi/messaging-service/internal/config"
	"github.com/yama-bushi/messaging-service/internal/domain/contact"
	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/database"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/logger"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/observability"
	providergw "github.com/yama-bushi/messaging-service/internal/infrastructure/provider"
	contactrepo "github.com/yama-bushi/messaging-service/internal/infrastructure/repository/contact"
	conversationrepo "github.com/yama-bushi/messaging-service/internal/infrastructure/repository/conversation"
	messagerepo "github.com/yama-bushi/messaging-service/internal/infrastructure/repository/message"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

// Application ties the HTTP surface to the process lifecycle.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	contactRepository := contactrepo.NewRepository(db)
	conversationRepository := conversationrepo.NewRepository(db)
	messageRepository := messagerepo.NewRepository(db)

	contactResolver := contact.NewResolver(contactRepository, log)
	conversationResolver := conversation.NewResolver(conversationRepository, contactResolver, log)
	ingester := message.NewIngester(messageRepository, conversationResolver, contactResolver, log)

	selector := provider.NewSelector(map[string]provider.Gateway{
		string(message.ChannelSMS):   newGateway(string(message.ChannelSMS), cfg.SMSProviderURL, cfg.ProviderTimeout, log),
		string(message.ChannelEmail): newGateway(string(message.ChannelEmail), cfg.EmailProviderURL, cfg.ProviderTimeout, log),
	})

	handlerProvider := handlers.NewProvider(ingester, conversationResolver, selector, log)
	httpServer := httpserver.New(cfg, log, handlerProvider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

// newGateway picks the vendor HTTP gateway when a base URL is configured
// and falls back to the loopback gateway otherwise, which keeps local
// development working without real provider credentials.
func newGateway(channel, baseURL string, timeout time.Duration, log zerolog.Logger) provider.Gateway {
	if baseURL == "" {
		return providergw.NewLoopbackGateway(channel)
	}
	switch channel {
	case string(message.ChannelEmail):
		return providergw.NewEmailGateway(baseURL, timeout, log)
	default:
		return providergw.NewSMSGateway(baseURL, timeout, log)
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
