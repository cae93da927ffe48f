package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
)

func apiError(status int, message string) *openai.Error {
	return &openai.Error{
		StatusCode: status,
		Message:    message,
		Request:    httptest.NewRequest(http.MethodPost, "http://localhost/chat/completions", nil),
		Response:   &http.Response{StatusCode: status},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		msg  string
	}{
		{"forbidden", apiError(http.StatusForbidden, "permission denied"), KindInvalidKey, MsgInvalidKey},
		{"invalid argument", apiError(http.StatusBadRequest, "API key not valid. INVALID_ARGUMENT"), KindInvalidKey, MsgInvalidKey},
		{"rate limited", apiError(http.StatusTooManyRequests, "Resource has been exhausted"), KindQuota, MsgQuota},
		{"wrapped quota", fmt.Errorf("call: %w", apiError(http.StatusTooManyRequests, "quota")), KindQuota, MsgQuota},
		{"other client error", apiError(http.StatusNotFound, "model not found"), KindUnknown, ""},
		{"server error", apiError(http.StatusInternalServerError, "INVALID state 429"), KindUnknown, ""},
		{"network", errors.New("dial tcp: connection refused"), KindUnknown, ""},
		{"plain text mentioning 429", errors.New("429 somewhere"), KindUnknown, ""},
		{"deadline", context.DeadlineExceeded, KindUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.msg, got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassify_KeepsGenerationError(t *testing.T) {
	in := &GenerationError{Kind: KindQuota, Message: MsgQuota}
	assert.Same(t, in, Classify(in))
}

func TestGenerationError_Error(t *testing.T) {
	err := &GenerationError{Kind: KindInvalidKey, Err: errors.New("boom")}
	assert.Equal(t, "generation failed (invalid_key): boom", err.Error())
	assert.Equal(t, "generation failed (unknown)", (&GenerationError{}).Error())
}

func TestClassify_ReadsArrayShapedBody(t *testing.T) {
	body := `[{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}]`
	apiErr := apiError(http.StatusBadRequest, "")
	apiErr.Response.Body = io.NopCloser(strings.NewReader(body))

	got := Classify(apiErr)
	assert.Equal(t, KindInvalidKey, got.Kind)
	assert.Equal(t, MsgInvalidKey, got.Message)

	// The body stays readable after classification.
	rest, err := io.ReadAll(apiErr.Response.Body)
	assert.NoError(t, err)
	assert.Equal(t, body, string(rest))
}
