package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/metrics"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/observability"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/requests"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/responses"
)

// WebhookHandler exposes HTTP entrypoints for inbound provider deliveries.
// Providers retry on non-2xx, so replayed deliveries must acknowledge with
// 200 rather than error.
type WebhookHandler struct {
	ingester message.Ingester
	log      zerolog.Logger
}

// NewWebhookHandler constructs the handler.
func NewWebhookHandler(ingester message.Ingester, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		ingester: ingester,
		log:      log.With().Str("handler", "webhook").Logger(),
	}
}

// InboundSMS handles POST /api/webhooks/sms
func (h *WebhookHandler) InboundSMS(c *gin.Context) {
	var req requests.SMSWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.ingest(c, message.InboundParams{
		ProviderType:      string(message.ChannelSMS),
		ProviderMessageID: req.MessagingProviderID,
		FromAddress:       req.From,
		ToAddress:         req.To,
		Channel:           message.ChannelSMS,
		Type:              message.Type(req.Type),
		Body:              req.Body,
		Attachments:       req.Attachments,
		SentAt:            req.Timestamp.UTC(),
	})
}

// InboundEmail handles POST /api/webhooks/email
func (h *WebhookHandler) InboundEmail(c *gin.Context) {
	var req requests.EmailWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.ingest(c, message.InboundParams{
		ProviderType:      string(message.ChannelEmail),
		ProviderMessageID: req.XillioID,
		FromAddress:       req.From,
		ToAddress:         req.To,
		Channel:           message.ChannelEmail,
		Type:              message.TypeEmail,
		Body:              req.Body,
		Attachments:       req.Attachments,
		SentAt:            req.Timestamp.UTC(),
	})
}

func (h *WebhookHandler) ingest(c *gin.Context, params message.InboundParams) {
	ctx, span := observability.StartIngestSpan(c.Request.Context(), string(message.DirectionInbound), string(params.Channel), string(params.Type))
	defer span.End()

	result, err := h.ingester.IngestInbound(ctx, params)
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to ingest webhook")
		return
	}

	if result.AlreadyProcessed {
		metrics.RecordDuplicateWebhook()
		observability.AddDuplicateEvent(span, params.ProviderType, params.ProviderMessageID)
		c.JSON(http.StatusOK, responses.WebhookAckResponse{
			Status:    "ok",
			Duplicate: true,
		})
		return
	}

	c.JSON(http.StatusOK, responses.WebhookAckResponse{
		Status:    "ok",
		MessageID: result.Message.PublicID,
	})
}
