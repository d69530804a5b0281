package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yama-bushi/messaging-service/internal/interfaces/httpserver/handlers"
)

func registerMessageRoutes(router gin.IRoutes, handler *handlers.MessageHandler) {
	router.POST("/messages/sms", handler.SendSMS)
	router.POST("/messages/email", handler.SendEmail)
}
