package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ewintr.nl/vidsum/auth"
	"ewintr.nl/vidsum/storage"
	"ewintr.nl/vidsum/summarize"
)

func Index(w http.ResponseWriter) {
	Message(w, http.StatusOK, "vidsum index")
}

// Success writes a {status, data} envelope.
func Success(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	response := struct {
		Status string `json:"status"`
		Data   any    `json:"data"`
	}{
		Status: "success",
		Data:   data,
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		fmt.Fprintf(w, `{"status": "error", "message": %q}`, marshalErr.Error())
		return
	}
	fmt.Fprint(w, string(body))
}

// Message writes a {status, message} envelope for responses without payload.
func Message(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	response := struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{
		Status:  "success",
		Message: message,
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		fmt.Fprintf(w, `{"status": "error", "message": %q}`, marshalErr.Error())
		return
	}
	fmt.Fprint(w, string(body))
}

func Error(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	response := struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{
		Status:  "error",
		Message: message,
	}
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		fmt.Fprintf(w, `{"status": "error", "message": %q}`, marshalErr.Error())
		return
	}
	fmt.Fprint(w, string(body))
}

// errStatus classifies an error into an HTTP status code.
func errStatus(err error) int {
	switch {
	case errors.Is(err, summarize.ErrInvalidVideoURL):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, summarize.ErrVideoNotFound),
		errors.Is(err, summarize.ErrNoTranscript),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrSearchUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errMessage keeps operational messages and hides everything else.
func errMessage(err error) string {
	for _, known := range []error{
		summarize.ErrInvalidVideoURL,
		summarize.ErrVideoNotFound,
		summarize.ErrNoTranscript,
		summarize.ErrGeneration,
		auth.ErrInvalidToken,
		storage.ErrNotFound,
		storage.ErrSearchUnavailable,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}

	return "internal server error"
}
