package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorBody is the standard error envelope: a stable machine-readable kind
// plus a human message.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// JSON writes a success payload as-is.
func JSON(w http.ResponseWriter, status int, payload any) {
	write(w, status, payload)
}

// Error writes the shared error envelope.
func Error(w http.ResponseWriter, status int, kind, message string) {
	write(w, status, errorEnvelope{Error: ErrorBody{Kind: kind, Message: message}})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
