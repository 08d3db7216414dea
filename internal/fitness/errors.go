package fitness

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// ErrorKind classifies a backend failure for the view layer.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindBackend      ErrorKind = "backend"
	KindTransport    ErrorKind = "transport"
)

// Fixed user-facing messages for the status-driven kinds.
const (
	msgUnauthorized = "Нямате права за достъп или сесията е изтекла"
	msgNotFound     = "Ресурсът не е намерен"
)

// APIError is the normalized failure of one backend call. Message is
// always safe to show to the user.
type APIError struct {
	Kind        ErrorKind
	StatusCode  int
	Message     string
	FieldErrors map[string]string

	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// IsUnauthorized reports whether err is a 401/403 backend failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == KindUnauthorized
}

// IsNotFound reports whether err is a 404 backend failure.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == KindNotFound
}

// errorBody is the duck-typed backend error shape.
type errorBody struct {
	FieldErrors map[string]string `json:"fieldErrors"`
	Message     string            `json:"message"`
	Err         string            `json:"error"`
}

// parseAPIError normalizes a non-2xx response with an explicit
// fallthrough order: fixed messages for 401/403 and 404, then field
// errors joined into one string, then message, then error, then the
// caller's default. The raw body text is shown only when it is not JSON.
func parseAPIError(status int, raw []byte, defaultMsg string) *APIError {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &APIError{Kind: KindUnauthorized, StatusCode: status, Message: msgUnauthorized}
	}
	if status == http.StatusNotFound {
		return &APIError{Kind: KindNotFound, StatusCode: status, Message: msgNotFound}
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		// Not JSON at all: show the raw body if there is one.
		if text := strings.TrimSpace(string(raw)); text != "" {
			return &APIError{Kind: KindBackend, StatusCode: status, Message: text}
		}
		return &APIError{Kind: KindBackend, StatusCode: status, Message: defaultMsg}
	}

	if len(body.FieldErrors) > 0 {
		return &APIError{
			Kind:        KindValidation,
			StatusCode:  status,
			Message:     joinFieldErrors(body.FieldErrors),
			FieldErrors: body.FieldErrors,
		}
	}
	if body.Message != "" {
		return &APIError{Kind: KindBackend, StatusCode: status, Message: body.Message}
	}
	if body.Err != "" {
		return &APIError{Kind: KindBackend, StatusCode: status, Message: body.Err}
	}
	return &APIError{Kind: KindBackend, StatusCode: status, Message: defaultMsg}
}

// parseAuthError handles login/register failures: the backend's message
// field is used verbatim whatever the status, falling back to
// "Грешка <code>: <status text>". Field-error joining does not apply here.
func parseAuthError(status int, raw []byte, defaultMsg string) *APIError {
	kind := KindBackend
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindUnauthorized
	case http.StatusNotFound:
		kind = KindNotFound
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return &APIError{Kind: kind, StatusCode: status, Message: body.Message}
	}

	text := http.StatusText(status)
	if text == "" {
		text = "Неизвестна грешка"
	}
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Message:    "Грешка " + strconv.Itoa(status) + ": " + text,
	}
}

// joinFieldErrors joins values in key order so the message is stable.
func joinFieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, fields[k])
	}
	return strings.Join(values, ", ")
}
