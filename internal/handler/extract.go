package handler

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/image-text-extractor/internal/logging"
	"github.com/kdduha/image-text-extractor/internal/models"
	"go.uber.org/zap"
)

type ExtractHandler struct {
	logger  *zap.Logger
	service extractService
}

func NewExtractHandler(logger *zap.Logger, service extractService) *ExtractHandler {
	return &ExtractHandler{
		logger:  logger,
		service: service,
	}
}

// ExtractRequest documents the invocation event accepted by /extract.
type ExtractRequest struct {
	Base64 string `json:"base64" validate:"required" example:"iVBORw0KGgoAAAANSUhEUgAA..."`
}

// Extract godoc
// @Summary Extract text from image
// @Description Extract the characters depicted in a base64-encoded image. The response mirrors the Lambda envelope and its statusCode is also the HTTP status.
// @Tags extract
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Invocation event"
// @Success 200 {object} models.ResponseEnvelope
// @Failure 400 {object} models.ResponseEnvelope
// @Failure 500 {object} models.ResponseEnvelope
// @Router /extract [post]
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))

	var event models.InvocationEvent
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&event); err != nil {
		writeEnvelope(w, rejectEvent(ctx, h.logger, fmt.Errorf("%w: %s", ErrInvalidEvent, err)))
		return
	}

	writeEnvelope(w, h.service.Handle(ctx, event).Envelope())
}

func writeEnvelope(w http.ResponseWriter, env models.ResponseEnvelope) {
	data, err := sonic.Marshal(env)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	_, _ = w.Write(data)
}
