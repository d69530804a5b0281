package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/responses"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// ConversationHandler exposes HTTP entrypoints for conversation listings.
type ConversationHandler struct {
	resolver conversation.Resolver
	ingester message.Ingester
	log      zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(resolver conversation.Resolver, ingester message.Ingester, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		resolver: resolver,
		ingester: ingester,
		log:      log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /api/conversations
func (h *ConversationHandler) List(c *gin.Context) {
	summaries, err := h.resolver.List(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	payload := make([]responses.ConversationSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		payload = append(payload, responses.MapSummaryToResponse(s))
	}

	c.JSON(http.StatusOK, gin.H{"conversations": payload})
}

// ListMessages handles GET /api/conversations/:id/messages
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid conversation id", "conversation-id-parse")
		return
	}

	if _, err := h.resolver.Get(c.Request.Context(), uint(id)); err != nil {
		responses.HandleError(c, err, "conversation not found")
		return
	}

	msgs, err := h.ingester.ListMessages(c.Request.Context(), uint(id))
	if err != nil {
		responses.HandleError(c, err, "failed to list messages")
		return
	}

	payload := make([]responses.MessageResponse, 0, len(msgs))
	for idx := range msgs {
		payload = append(payload, responses.MapMessageToResponse(&msgs[idx]))
	}

	c.JSON(http.StatusOK, gin.H{"messages": payload})
}
