package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates route registration under the /api prefix.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the api route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all routes under the /api prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/api")
	registerMessageRoutes(group, r.handlers.Message)
	registerWebhookRoutes(group, r.handlers.Webhook)
	registerConversationRoutes(group, r.handlers.Conversation)
}
