package utils

import (
	"encoding/json"
	"net/http"
)

// StatusResponse is the body of every ops endpoint reply.
type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func writeStatus(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(StatusResponse{Status: code < http.StatusBadRequest, Message: message})
}

func ResponseSuccess(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusOK, message)
}

func ResponseUnavailable(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusServiceUnavailable, message)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusInternalServerError, message)
}
