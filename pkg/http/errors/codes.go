package errors

import (
	"net/http"
	"strings"
)

// Messages carried in the error envelope, keyed by status code.
const (
	MessageBadRequest       = "bad request"
	MessageNotFound         = "resource not found"
	MessageMethodNotAllowed = "method not allowed"
	MessageUnprocessable    = "unprocessable"
	MessageInternalError    = "internal server error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusNotFound:            MessageNotFound,
	http.StatusMethodNotAllowed:    MessageMethodNotAllowed,
	http.StatusUnprocessableEntity: MessageUnprocessable,
	http.StatusInternalServerError: MessageInternalError,
}

// Message returns the envelope message for status, falling back to the
// lower-cased standard status text.
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return strings.ToLower(http.StatusText(status))
}
