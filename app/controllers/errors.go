package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"postboard/app/models"
)

// statusFor maps an AppError code onto an HTTP status.
func statusFor(code string) int {
	switch code {
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeValidation, models.CodeInvalidArgument:
		return http.StatusBadRequest
	case models.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// sendError writes err as JSON. Validation failures become a field -> message
// object; anything that is not an AppError is logged and hidden behind a 500.
func sendError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code == models.CodeInternal {
		log.ErrorContext(r.Context(), "request error", "error", err)
		sendJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	status := statusFor(appErr.Code)
	if appErr.Code == models.CodeValidation {
		sendJSON(w, status, appErr.Fields)
		return
	}
	if appErr.Code == models.CodeConflict {
		log.WarnContext(r.Context(), "request conflict", "error", err)
	}
	sendJSON(w, status, models.ErrorResponse{Error: appErr.Message})
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// sendOK answers a delete with an empty 200. The body is not JSON, so no
// JSON content type is announced.
func sendOK(w http.ResponseWriter) {
	w.Header().Del("Content-Type")
	w.WriteHeader(http.StatusOK)
}

// pathID reads a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewInvalidArgumentError("Invalid " + name + ": " + strconv.Quote(raw))
	}
	return id, nil
}

// decodeJSON reads a single JSON document into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return models.NewInvalidArgumentError("Request body is required")
		}
		return models.NewInvalidArgumentError("Malformed JSON request")
	}
	return nil
}
