package main

import (
	"log"

	"github.com/BillyBonaros/mcp-luxmii/internal/config"
	"github.com/BillyBonaros/mcp-luxmii/internal/handler"
	"github.com/BillyBonaros/mcp-luxmii/internal/logger"
	"github.com/BillyBonaros/mcp-luxmii/internal/service"
	"github.com/BillyBonaros/mcp-luxmii/internal/service/shopifyclient"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.GetConfig()

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}

	shopify := shopifyclient.NewClient(cfg.Shopify, zaplog)
	service := service.NewService(shopify, zaplog)

	return handler.Serve(cfg.Handler, service, zaplog)
}
