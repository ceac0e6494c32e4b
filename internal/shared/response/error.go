package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"accrete-server/internal/shared/errors"
)

// ErrorResponse represents the JSON error response sent to clients
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// errorClass is how one error type is answered and logged.
type errorClass struct {
	status int
	level  slog.Level
	msg    string
}

var internalClass = errorClass{http.StatusInternalServerError, slog.LevelError, "Internal server error"}

var errorClasses = map[errors.ErrorType]errorClass{
	errors.ErrorTypeNotFound:         {http.StatusNotFound, slog.LevelDebug, "Resource not found"},
	errors.ErrorTypeValidation:       {http.StatusBadRequest, slog.LevelDebug, "Client error"},
	errors.ErrorTypeMethodNotAllowed: {http.StatusMethodNotAllowed, slog.LevelDebug, "Client error"},
	errors.ErrorTypeConflict:         {http.StatusConflict, slog.LevelInfo, "Conflict error"},
	errors.ErrorTypeUnauthorized:     {http.StatusUnauthorized, slog.LevelWarn, "Authorization error"},
	errors.ErrorTypeForbidden:        {http.StatusForbidden, slog.LevelWarn, "Authorization error"},
	errors.ErrorTypeNonConvergent:    {http.StatusUnprocessableEntity, slog.LevelWarn, "Generation did not converge"},
	errors.ErrorTypeExternal:         {http.StatusServiceUnavailable, slog.LevelError, "External service error"},
	errors.ErrorTypeInternal:         internalClass,
}

func classify(t errors.ErrorType) errorClass {
	if c, ok := errorClasses[t]; ok {
		return c
	}
	return internalClass
}

// Error logs err and answers with its JSON form. Handlers should not log
// errors themselves; this is the single place they are recorded.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ErrorWithMessage(w, r, logger, err, err.Error())
}

// ErrorWithMessage is Error with a client-facing message that differs from
// the logged error.
func ErrorWithMessage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, clientMessage string) {
	errorType := errors.GetType(err)
	class := classify(errorType)

	logger.Log(r.Context(), class.level, class.msg,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", class.status,
		"error", err,
	)

	sendErrorResponse(w, errorType, clientMessage, class.status)
}

// sendErrorResponse sends a JSON error response to the client
func sendErrorResponse(w http.ResponseWriter, errorType errors.ErrorType, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   string(errorType),
		Message: message,
		Code:    statusCode,
	}

	// If JSON encoding fails, there's not much we can do at this point
	// The status code has already been sent
	_ = json.NewEncoder(w).Encode(response)
}

// Success sends a JSON success response to the client
func Success(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		// If JSON encoding fails, there's not much we can do at this point
		// The status code has already been sent
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Raw sends a non-JSON body with the given content type
func Raw(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
