package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ResponseError is a rejected call: the server answered with a non-2xx
// status.
type ResponseError struct {
	Status  int
	Message string
	Body    []byte
}

func newResponseError(status int, body []byte) *ResponseError {
	e := &ResponseError{Status: status, Body: append([]byte(nil), body...)}

	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch m := payload.Message.(type) {
		case nil:
		case string:
			e.Message = m
		default:
			e.Message = fmt.Sprint(m)
		}
	}
	return e
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// HasMessage reports whether the server sent a structured message.
func (e *ResponseError) HasMessage() bool {
	return e.Message != ""
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// AsResponseError extracts a *ResponseError from err's chain.
func AsResponseError(err error) (*ResponseError, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
