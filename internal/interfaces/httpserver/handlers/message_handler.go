package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/metrics"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/observability"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/requests"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/responses"
)

// MessageHandler exposes HTTP entrypoints for outbound sends.
type MessageHandler struct {
	ingester message.Ingester
	selector *provider.Selector
	log      zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(ingester message.Ingester, selector *provider.Selector, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		ingester: ingester,
		selector: selector,
		log:      log.With().Str("handler", "message").Logger(),
	}
}

// SendSMS handles POST /api/messages/sms
func (h *MessageHandler) SendSMS(c *gin.Context) {
	var req requests.SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.send(c, message.ChannelSMS, message.Type(req.Type), req.From, req.To, req.Body, req.Attachments, req.Timestamp)
}

// SendEmail handles POST /api/messages/email
func (h *MessageHandler) SendEmail(c *gin.Context) {
	var req requests.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.send(c, message.ChannelEmail, message.TypeEmail, req.From, req.To, req.Body, req.Attachments, req.Timestamp)
}

func (h *MessageHandler) send(c *gin.Context, channel message.Channel, msgType message.Type, from, to, body string, attachments []string, timestamp time.Time) {
	ctx, span := observability.StartIngestSpan(c.Request.Context(), string(message.DirectionOutbound), string(channel), string(msgType))
	defer span.End()

	gateway, err := h.selector.ForChannel(ctx, string(channel))
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "unsupported channel")
		return
	}

	sendCtx, sendSpan := observability.StartProviderSendSpan(ctx, string(channel))
	start := time.Now()
	outcome, err := gateway.Send(sendCtx, provider.OutboundMessage{
		From:        from,
		To:          to,
		MessageType: string(msgType),
		Body:        body,
		Attachments: attachments,
	})
	metrics.RecordProviderSend(string(channel), string(outcome.Status), time.Since(start).Seconds())
	sendSpan.End()
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "provider send failed")
		return
	}

	msg, err := h.ingester.IngestOutbound(ctx, message.OutboundParams{
		Channel:     channel,
		Type:        msgType,
		FromAddress: from,
		ToAddress:   to,
		Body:        body,
		Attachments: attachments,
		SentAt:      timestamp.UTC(),
		Outcome:     outcome,
	})
	if err != nil {
		observability.RecordError(span, err)
		responses.HandleError(c, err, "failed to record outbound message")
		return
	}

	c.JSON(http.StatusOK, responses.MapSendToResponse(msg))
}
