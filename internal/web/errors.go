package web

// errors.go turns errors into responses.
//
// Every error is logged with its technical text and request ID, then sent to
// the client as a core.UserMessage: JSON for API clients, an HTML fragment
// for browsers and HTMX.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/colcheck/internal/core"
	"github.com/JonMunkholm/colcheck/internal/logging"
	"github.com/JonMunkholm/colcheck/internal/source"
)

var (
	errNoColumns = errors.New("no columns requested")
	errNoFile    = errors.New("no file provided")
)

// ErrorResponse is the JSON body of every error response. Missing lists the
// absent column names for COL001.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Action  string   `json:"action,omitempty"`
	Code    string   `json:"code"`
	Missing []string `json:"missing,omitempty"`
}

func newErrorResponse(err error) ErrorResponse {
	msg := core.MapError(err)
	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	var mce *core.MissingColumnsError
	if errors.As(err, &mce) {
		resp.Missing = mce.Columns
	}
	return resp
}

// respondError logs err and writes the user-facing response.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	resp := newErrorResponse(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", resp.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, r, status, resp)
		return
	}
	renderHTML(w, r, status, errorAlert(resp), isHTMX(r))
}

// statusFor picks the HTTP status for err, using fallback for anything not
// recognised.
func statusFor(err error, fallback int) int {
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, new(*core.MissingColumnsError)):
		return http.StatusUnprocessableEntity
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrTooManyChecks):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errNoColumns), errors.Is(err, errNoFile),
		errors.Is(err, source.ErrEmptyFile),
		errors.Is(err, core.ErrDuplicateColumn), errors.Is(err, core.ErrRaggedTable):
		return http.StatusBadRequest
	default:
		return fallback
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client prefers JSON. Browsers and HTMX ask
// for HTML; everything else, including clients without an Accept header,
// gets JSON.
func wantsJSON(r *http.Request) bool {
	if isHTMX(r) {
		return false
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	return !strings.Contains(accept, "text/html")
}
