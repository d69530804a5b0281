package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, handler *handlers.ConversationHandler) {
	router.GET("/conversations", handler.List)
	router.GET("/conversations/:id/messages", handler.ListMessages)
}
