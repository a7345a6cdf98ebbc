package handler

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/kdduha/image-text-extractor/internal/logging"
	"github.com/kdduha/image-text-extractor/internal/metrics"
	"github.com/kdduha/image-text-extractor/internal/models"
	"go.uber.org/zap"
)

type extractService interface {
	Handle(ctx context.Context, event models.InvocationEvent) models.Result
}

type LambdaHandler struct {
	logger  *zap.Logger
	service extractService
}

func NewLambdaHandler(logger *zap.Logger, service extractService) *LambdaHandler {
	return &LambdaHandler{
		logger:  logger,
		service: service,
	}
}

// Handle is the Lambda entrypoint. The returned error is always nil so the
// caller receives an envelope for every outcome.
func (h *LambdaHandler) Handle(ctx context.Context, payload json.RawMessage) (models.ResponseEnvelope, error) {
	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	ctx = logging.WithRequestID(ctx, requestID)

	event, err := DecodeEvent(payload)
	if err != nil {
		return rejectEvent(ctx, h.logger, err), nil
	}
	return h.service.Handle(ctx, event).Envelope(), nil
}

// rejectEvent answers a payload that could not be decoded into an event.
func rejectEvent(ctx context.Context, logger *zap.Logger, err error) models.ResponseEnvelope {
	res := models.ClientError{Message: err.Error()}
	metrics.InvocationsTotal(res.Outcome())
	logger.Warn("invalid event",
		zap.String("request_id", logging.RequestID(ctx)),
		zap.String("outcome", res.Outcome()),
		zap.Error(err),
	)
	return res.Envelope()
}
