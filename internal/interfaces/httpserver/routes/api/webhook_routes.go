package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

func registerWebhookRoutes(router gin.IRoutes, handler *handlers.WebhookHandler) {
	router.POST("/webhooks/sms", handler.InboundSMS)
	router.POST("/webhooks/email", handler.InboundEmail)
}
