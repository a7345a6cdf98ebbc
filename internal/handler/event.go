package handler

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bytedance/sonic"
	"github.com/kdduha/image-text-extractor/internal/models"
)

var ErrInvalidEvent = errors.New("invalid event")

// DecodeEvent parses a raw invocation payload. API Gateway proxy events are
// unwrapped and their body is parsed as the invocation event.
func DecodeEvent(raw []byte) (models.InvocationEvent, error) {
	var event models.InvocationEvent
	if err := sonic.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEvent, err)
	}
	if !isProxyEvent(event) {
		return event, nil
	}

	var req events.APIGatewayProxyRequest
	if err := sonic.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: proxy request: %s", ErrInvalidEvent, err)
	}
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: proxy body: %s", ErrInvalidEvent, err)
		}
		body = decoded
	}
	if len(body) == 0 {
		return models.InvocationEvent{}, nil
	}

	var inner models.InvocationEvent
	if err := sonic.Unmarshal(body, &inner); err != nil {
		return nil, fmt.Errorf("%w: proxy body: %s", ErrInvalidEvent, err)
	}
	return inner, nil
}

func isProxyEvent(event models.InvocationEvent) bool {
	if _, ok := event[models.InvocationEventKey]; ok {
		return false
	}
	_, hasMethod := event["httpMethod"]
	_, hasContext := event["requestContext"]
	return hasMethod && hasContext
}
