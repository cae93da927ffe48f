package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	openai "github.com/openai/openai-go"
)

// ErrMissingAPIKey is returned before any provider call when no key is given.
var ErrMissingAPIKey = errors.New("missing api key")

// ErrorKind is the caller-facing class of a generation failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidKey
	KindQuota
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidKey:
		return "invalid_key"
	case KindQuota:
		return "quota"
	default:
		return "unknown"
	}
}

const (
	MsgInvalidKey = "Clave inválida."
	MsgQuota      = "Cuota agotada."
)

// GenerationError is a classified generation failure. Message is safe to show
// to the caller; Err keeps the internal cause.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func unknownError(err error) *GenerationError {
	return &GenerationError{Kind: KindUnknown, Err: err}
}

// Classify maps a provider failure into one of the three outcomes. Only client
// errors (4xx) reported by the provider API are inspected; the match is on the
// status code and the provider's error text, which is not a stable format.
// The raw body is included because array-shaped error bodies are not decoded
// into Code or Message. Error() is left out: it carries the request URL.
func Classify(err error) *GenerationError {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode < 400 || apiErr.StatusCode >= 500 {
		return unknownError(err)
	}

	text := strings.Join([]string{strconv.Itoa(apiErr.StatusCode), apiErr.Code, apiErr.Message, responseBody(apiErr)}, " ")
	switch {
	case strings.Contains(text, "403") || strings.Contains(text, "INVALID"):
		return &GenerationError{Kind: KindInvalidKey, Message: MsgInvalidKey, Err: err}
	case strings.Contains(text, "429"):
		return &GenerationError{Kind: KindQuota, Message: MsgQuota, Err: err}
	default:
		return unknownError(err)
	}
}

// responseBody reads the error response body and puts it back for later readers.
func responseBody(apiErr *openai.Error) string {
	if apiErr.Response == nil || apiErr.Response.Body == nil {
		return ""
	}
	data, err := io.ReadAll(apiErr.Response.Body)
	_ = apiErr.Response.Body.Close()
	apiErr.Response.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return string(data)
}
