package client

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown when a failed response carries no usable detail.
const FallbackMessage = "Erro ao gerar documento"

// ErrBaseURL is returned when the client is built without a usable base URL.
var ErrBaseURL = errors.New("client: base url must be an absolute http(s) url")

// RequestError is a non-2xx answer from the API.
type RequestError struct {
	Status    int
	Detail    string
	RequestID string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("client: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message())
}

// Message is the text meant for the person who submitted the form: the
// server's detail, or FallbackMessage.
func (e *RequestError) Message() string {
	if e.Detail == "" {
		return FallbackMessage
	}
	return e.Detail
}

// TransportError wraps failures that happen around the exchange itself:
// encoding, connecting, or reading the body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message is the underlying error text.
func (e *TransportError) Message() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Err.Error()
}
