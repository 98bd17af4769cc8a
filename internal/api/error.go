package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// GenericMessage is surfaced whenever the backend failure has no
// recognizable shape, including transport failures.
const GenericMessage = "Unexpected error. Please try again later."

// ErrorKind tags the closed set of failure variants every caller sees.
type ErrorKind int

const (
	KindTransport    ErrorKind = iota // no server response at all
	KindUnauthorized                  // 401, session invalidated locally
	KindValidation                    // field-keyed validation errors
	KindServer                        // server-provided error string
	KindUnknown                       // response with an unrecognized body
)

// Error is the single error type produced by the request pipeline.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// errorBody is the set of backend error shapes the pipeline recognizes.
// errorMessage is part of the wire contract but never preferred over the
// other two fields.
type errorBody struct {
	Error        string              `json:"error"`
	ErrorMessage string              `json:"errorMessage"`
	Errors       map[string][]string `json:"errors"`
}

// normalize maps a failed response onto one Error. Validation maps win
// over the single error string; anything else falls back to the generic
// message.
func normalize(status int, body []byte) *Error {
	var parsed errorBody
	if len(body) > 0 {
		// A body that is not JSON is treated the same as no body.
		_ = json.Unmarshal(body, &parsed)
	}

	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case len(parsed.Errors) > 0:
		kind = KindValidation
	case parsed.Error != "":
		kind = KindServer
	}

	message := parsed.Error
	if len(parsed.Errors) > 0 {
		message = flattenFieldErrors(parsed.Errors)
	}
	if message == "" {
		message = GenericMessage
	}

	return &Error{
		Kind:    kind,
		Status:  status,
		Message: message,
		Fields:  parsed.Errors,
	}
}

// flattenFieldErrors joins all messages with newlines, in sorted field
// order so the result is deterministic.
func flattenFieldErrors(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var messages []string
	for _, k := range keys {
		messages = append(messages, fields[k]...)
	}
	return strings.Join(messages, "\n")
}
