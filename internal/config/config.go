// config.go
package config

import "os"

type Config struct {
	RabbitURL          string
	OrdersQueue        string
	NotificationsQueue string
	Port               string
	GinMode            string
}

func Load() *Config {
	return &Config{
		RabbitURL:          getEnv("RABBIT_URL", "amqp://localhost:5672"),
		OrdersQueue:        getEnv("ORDERS_QUEUE", "logistics_orders"),
		NotificationsQueue: getEnv("NOTIFICATIONS_QUEUE", "notifications"),
		Port:               getEnv("PORT", "3000"),
		GinMode:            getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
