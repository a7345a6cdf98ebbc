package models

import "net/http"

// InvocationEventKey is the event field carrying the base64 image.
const InvocationEventKey = "base64"

// InvocationEvent is the payload delivered by the trigger. Only the base64 key
// is read; any other keys are ignored.
type InvocationEvent map[string]any

// ResponseEnvelope is returned for every outcome. Its shape is also a valid
// API Gateway proxy integration response.
type ResponseEnvelope struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Body       string `json:"body" example:"ABC123"`
}

// Result is the outcome of a single invocation before it is mapped to an
// envelope. Implemented by Success, ClientError and ServerError.
type Result interface {
	Envelope() ResponseEnvelope
	Outcome() string
}

type Success struct {
	Text string
}

func (s Success) Envelope() ResponseEnvelope {
	return ResponseEnvelope{StatusCode: http.StatusOK, Body: s.Text}
}

func (Success) Outcome() string { return "success" }

type ClientError struct {
	Message string
}

func (c ClientError) Envelope() ResponseEnvelope {
	return ResponseEnvelope{StatusCode: http.StatusBadRequest, Body: c.Message}
}

func (ClientError) Outcome() string { return "client_error" }

type ServerError struct {
	Message string
}

func (s ServerError) Envelope() ResponseEnvelope {
	return ResponseEnvelope{StatusCode: http.StatusInternalServerError, Body: s.Message}
}

func (ServerError) Outcome() string { return "server_error" }
