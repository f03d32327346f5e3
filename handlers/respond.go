package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wisewallet/backend/apperr"
	"wisewallet/backend/logger"
	"wisewallet/backend/middleware"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an error kind to an HTTP status. Provider failures answer
// with providerStatus, which differs between the auth and expense routes.
func statusFor(kind apperr.Kind, providerStatus int) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindProvider:
		return providerStatus
	default:
		return http.StatusInternalServerError
	}
}

// errorResponder writes classified errors. Unclassified errors get a generic
// message; their text reaches the client only outside production.
type errorResponder struct {
	providerStatus int
	showDetail     bool
}

func (e errorResponder) respond(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind, e.providerStatus)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "error", err)
	}
	message := apperr.MessageOf(err, "Something went wrong!")

	// detail is the underlying cause, or the error itself when unclassified
	detail := err
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		detail = appErr.Err
	}
	middleware.WriteError(w, status, message, detail, e.showDetail)
}

func (e errorResponder) badRequest(w http.ResponseWriter, message string, err error) {
	middleware.WriteError(w, http.StatusBadRequest, message, err, e.showDetail)
}
