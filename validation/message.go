package validation

import (
	"errors"
	"strings"
)

// DefaultMessageID identifies the message a rule reports when no variant is requested.
const DefaultMessageID = "default"

// Message is a diagnostic message template with {param} placeholders.
type Message string

// Format substitutes params into the template. Unknown placeholders are left untouched.
func (m Message) Format(params map[string]string) string {
	if len(params) == 0 {
		return string(m)
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(string(m))
}

// Messages holds the message variants of a rule keyed by message id.
type Messages map[string]Message

// Error builds the error for the given message variant. An unknown id falls back to the default message.
func (m Messages) Error(id string, params map[string]string) error {
	msg, ok := m[id]
	if !ok {
		msg = m[DefaultMessageID]
	}
	return errors.New(msg.Format(params))
}
