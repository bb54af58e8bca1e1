package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/config"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/controller"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/logger"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/middleware"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/rabbit"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/repository"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	// Broker producer. Boot does not depend on the broker being up:
	// the first publish reconnects lazily.
	producer := rabbit.NewProducer(cfg.RabbitURL, log)
	if err := producer.Connect(); err != nil {
		log.Warn("RabbitMQ not reachable at startup, will retry on first publish", zap.Error(err))
	}
	defer producer.Close()

	// Store and services
	repo := repository.NewInMemoryOrderRepository()
	defer repo.Close()
	orderService := service.NewOrderService(
		repo,
		producer,
		service.NewPricingEngine(),
		service.NewTrackingNumberGenerator(),
		log,
		cfg.OrdersQueue,
		cfg.NotificationsQueue,
	)

	// Handlers
	orderCtrl := controller.NewOrderController(orderService)
	messageCtrl := controller.NewMessageController(producer)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Swift Logistics API is running with RabbitMQ")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Order routes (consumed by the React dashboard)
	orders := api.Group("/orders")
	orders.POST("", orderCtrl.CreateOrder)
	orders.GET("", orderCtrl.ListOrders)
	orders.GET("/summary", orderCtrl.OrderSummary)
	orders.GET("/:trackingNumber", orderCtrl.GetOrder)
	orders.PATCH("/:trackingNumber/status", orderCtrl.UpdateStatus)

	// Generic messaging routes
	messages := api.Group("/messages")
	messages.POST("/send-to-queue", messageCtrl.SendToQueue)
	messages.POST("/send-to-exchange", messageCtrl.SendToExchange)

	log.Info("Swift Logistics API listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
