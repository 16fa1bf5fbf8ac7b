package commands

import (
	"errors"
	"strings"

	"github.com/SergeyKozhin/events-assistant/internal/model"
)

const (
	MessageNotFound     = "❌ Event not found."
	MessageForbidden    = "❌ You are not allowed to do this."
	MessageError        = "❌ An error occurred."
	MessageRosterFailed = "⚠️ You are signed up, but the roster message could not be updated."
)

// UserMessage turns an error returned by the Service into text that is safe
// to show to the user. Storage and delivery details stay in the logs.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNoRecord):
		return MessageNotFound
	case errors.Is(err, model.ErrForbidden):
		return MessageForbidden
	case errors.Is(err, model.ErrValidation):
		return "❌ " + ValidationDetail(err)
	case errors.Is(err, model.ErrDelivery):
		return MessageRosterFailed
	default:
		return MessageError
	}
}

// ValidationDetail strips the wrapping prefixes and returns the reason that
// follows the validation sentinel.
func ValidationDetail(err error) string {
	msg := err.Error()
	marker := model.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}

	return msg
}
