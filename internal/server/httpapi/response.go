package httpapi

import (
	"encoding/json"
	"net/http"
)

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":{"code":"internal_error","message":"Failed to encode response"}}`, http.StatusInternalServerError)
	}
}

// Error writes err as {"error":{"code":...,"message":...}}.
func Error(w http.ResponseWriter, err error) {
	apiErr := AsAPIError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiErr})
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// BadRequest writes a 400 with message.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, ErrBadRequest.WithMessage(message))
}
