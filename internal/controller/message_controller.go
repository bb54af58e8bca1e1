package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/dto"
)

// MessagePublisher is the broker surface the message endpoints need.
type MessagePublisher interface {
	Publish(queue string, payload any) error
	PublishToExchange(exchange, routingKey string, payload any, kind string) error
}

// MessageController exposes generic queue/exchange publishing for
// tooling and manual testing.
type MessageController struct {
	Publisher MessagePublisher
}

func NewMessageController(p MessagePublisher) *MessageController {
	return &MessageController{Publisher: p}
}

// POST /api/messages/send-to-queue
func (ctl *MessageController) SendToQueue(c *gin.Context) {
	var req dto.SendToQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "queueName and message are required"})
		return
	}

	if err := ctl.Publisher.Publish(req.QueueName, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"data":    gin.H{"queueName": req.QueueName, "message": req.Message},
	})
}

// POST /api/messages/send-to-exchange
func (ctl *MessageController) SendToExchange(c *gin.Context) {
	var req dto.SendToExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "exchangeName, routingKey, and message are required"})
		return
	}

	if err := ctl.Publisher.PublishToExchange(req.ExchangeName, req.RoutingKey, req.Message, req.ExchangeType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message published successfully",
		"data": gin.H{
			"exchangeName": req.ExchangeName,
			"routingKey":   req.RoutingKey,
			"message":      req.Message,
			"exchangeType": req.ExchangeType,
		},
	})
}
