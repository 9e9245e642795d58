package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// Envelope is the shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	resp := Envelope{
		Success: false,
		Message: message,
	}
	if details != nil {
		resp.Error = details.Error()
	} else {
		resp.Error = http.StatusText(statusCode)
	}
	writeEnvelope(w, statusCode, resp)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	writeEnvelope(w, statusCode, Envelope{
		Success: true,
		Data:    body,
	})
}

// WriteMessageResponse writes a successful envelope with a human readable
// message next to the payload.
func WriteMessageResponse(w http.ResponseWriter, statusCode int, message string, body any) {
	writeEnvelope(w, statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    body,
	})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, resp Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(resp)
}
