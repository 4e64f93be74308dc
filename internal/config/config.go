package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	handlerConfig "github.com/BillyBonaros/mcp-luxmii/internal/handler/config"
	loggerConfig "github.com/BillyBonaros/mcp-luxmii/internal/logger/config"
	shopifyConfig "github.com/BillyBonaros/mcp-luxmii/internal/service/shopifyclient/config"
)

type Config struct {
	Handler handlerConfig.Config
	Shopify shopifyConfig.Config
	Logger  loggerConfig.Config
}

// GetConfig loads a .env when one is present, then reads the
// environment. SHOP_URL may be a bare hostname; the scheme is added
// here so the client only ever sees a full base URL.
func GetConfig() Config {
	_ = godotenv.Load()

	return Config{
		Handler: handlerConfig.Config{
			ServerAddr: getenv("RUN_ADDRESS", ":8000"),
		},
		Shopify: shopifyConfig.Config{
			BaseURL:     baseURL(os.Getenv("SHOP_URL")),
			AccessToken: os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		},
		Logger: loggerConfig.Config{
			LogLevel: getenv("LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func baseURL(shopURL string) string {
	if shopURL == "" {
		return ""
	}
	if strings.HasPrefix(shopURL, "http://") || strings.HasPrefix(shopURL, "https://") {
		return strings.TrimSuffix(shopURL, "/")
	}
	return "https://" + strings.TrimSuffix(shopURL, "/")
}
