package client

import "net/http"

// Fixed per-endpoint failure messages. A more specific message from the
// service (FastAPI-style {"detail": ...}) takes precedence when present.
const (
	MsgSchemaFailed  = "Failed to fetch schema"
	MsgMetricsFailed = "Failed to fetch metrics"
	MsgPredictFailed = "Prediction failed"
)

// StatusError reports a completed request whose status indicated failure.
// Message is the human-readable string surfaced to the UI banner.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode())
}

func (e *StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}
