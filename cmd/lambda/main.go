package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kdduha/image-text-extractor/internal/config"
	"github.com/kdduha/image-text-extractor/internal/handler"
	"github.com/kdduha/image-text-extractor/internal/llm"
	"github.com/kdduha/image-text-extractor/internal/logging"
	"github.com/kdduha/image-text-extractor/internal/service"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	client, err := llm.New(ctx, cfg)
	if err != nil {
		logger.Fatal("model client init failed", zap.Error(err))
	}
	defer client.Close()

	logger.Info("model client ready",
		zap.String("provider", client.Name()),
		zap.String("model", client.Model()),
		zap.String("region", cfg.Model.Region),
	)

	h := handler.NewLambdaHandler(logger, service.NewExtractService(logger, client))
	lambda.Start(h.Handle)
}
