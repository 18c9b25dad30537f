package ai

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumeparser/internal/config"
	"resumeparser/internal/errors"
)

func TestNewClient(t *testing.T) {
	t.Run("gemini", func(t *testing.T) {
		client, err := NewClient(config.DefaultLLMConfig(config.ProviderGemini), nil, WithAPIKey("k"))
		require.NoError(t, err)
		assert.IsType(t, &GeminiClient{}, client)
	})

	t.Run("claude", func(t *testing.T) {
		client, err := NewClient(config.DefaultLLMConfig(config.ProviderClaude), nil, WithAPIKey("k"))
		require.NoError(t, err)
		assert.IsType(t, &ClaudeClient{}, client)
	})

	t.Run("unknown provider", func(t *testing.T) {
		client, err := NewClient(config.DefaultLLMConfig("openai"), nil, WithAPIKey("k"))
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Equal(t, errors.ErrorTypeConfig, errors.TypeOf(err))
	})

	t.Run("missing key yields nil interface", func(t *testing.T) {
		t.Setenv(config.GeminiAPIKeyEnv, "")
		client, err := NewClient(config.DefaultLLMConfig(config.ProviderGemini), nil)
		require.Error(t, err)
		assert.True(t, client == nil)
		assert.True(t, errors.IsLLMError(err))
	})

	t.Run("explicit key wins over config", func(t *testing.T) {
		cfg := config.DefaultLLMConfig(config.ProviderGemini)
		cfg.APIKey = "from-config"
		key, err := resolveAPIKey(cfg, buildOptions([]Option{WithAPIKey("explicit")}))
		require.NoError(t, err)
		assert.Equal(t, "explicit", key)

		key, err = resolveAPIKey(cfg, buildOptions(nil))
		require.NoError(t, err)
		assert.Equal(t, "from-config", key)
	})

	t.Run("blank key is missing", func(t *testing.T) {
		t.Setenv(config.GeminiAPIKeyEnv, " \t")
		t.Setenv(config.AnthropicAPIKeyEnv, "  ")

		tests := []struct {
			name     string
			provider string
			apiKey   string
			opts     []Option
		}{
			{name: "option", provider: config.ProviderGemini, opts: []Option{WithAPIKey("   ")}},
			{name: "config", provider: config.ProviderClaude, apiKey: "\n  "},
			{name: "environment", provider: config.ProviderGemini},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := config.DefaultLLMConfig(tt.provider)
				cfg.APIKey = tt.apiKey

				client, err := NewClient(cfg, nil, tt.opts...)
				require.Error(t, err)
				assert.True(t, client == nil)
				assert.True(t, errors.IsLLMError(err))
				assert.Equal(t, errors.ErrCodeMissingAPIKey, errors.CodeOf(err))
			})
		}
	})

	t.Run("padded key is trimmed", func(t *testing.T) {
		key, err := resolveAPIKey(config.DefaultLLMConfig(config.ProviderGemini), buildOptions([]Option{WithAPIKey(" k \n")}))
		require.NoError(t, err)
		assert.Equal(t, "k", key)
	})

	t.Run("logs the resolved model", func(t *testing.T) {
		var buf bytes.Buffer
		logger := errors.NewLoggerWithWriter(&buf, slog.LevelInfo)

		cfg := config.DefaultLLMConfig(config.ProviderClaude)
		cfg.Model = "claude-sonnet-4-0"
		_, err := NewClient(cfg, logger, WithAPIKey("k"))
		require.NoError(t, err)

		assert.Contains(t, buf.String(), `"msg":"LLM client ready"`)
		assert.Contains(t, buf.String(), `"provider":"claude"`)
		assert.Contains(t, buf.String(), `"model":"claude-sonnet-4-0"`)
	})
}

func TestValidatePrompt(t *testing.T) {
	assert.NoError(t, ValidatePrompt("hello"))

	for _, prompt := range []string{"", "   ", "\n\t"} {
		err := ValidatePrompt(prompt)
		require.Error(t, err)
		assert.True(t, errors.IsLLMError(err))
		assert.Equal(t, errors.ErrCodeInvalidPrompt, errors.CodeOf(err))
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", stderrors.New("bad"), false},
		{"network timeout", fmt.Errorf("wrapped: %w", timeoutError{}), true},
		{"caller cancelled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"googleapi 503", &googleapi.Error{Code: http.StatusServiceUnavailable}, true},
		{"googleapi 400", &googleapi.Error{Code: http.StatusBadRequest}, false},
		{"genai 429", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"genai 500 wrapped", fmt.Errorf("call: %w", genai.APIError{Code: http.StatusInternalServerError}), true},
		{"genai 403", genai.APIError{Code: http.StatusForbidden}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestExecuteWithRetry(t *testing.T) {
	r := newRetrier(2, errors.NewNopLogger())
	r.baseDelay = time.Millisecond

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		_, err := executeWithRetry(context.Background(), r, "test", func(context.Context) (string, error) {
			calls++
			return "", stderrors.New("bad request")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		_, err := executeWithRetry(context.Background(), r, "test", func(context.Context) (string, error) {
			calls++
			return "", genai.APIError{Code: http.StatusServiceUnavailable}
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "failed after 2 retries")
	})

	t.Run("single attempt returns the raw error", func(t *testing.T) {
		single := newRetrier(0, errors.NewNopLogger())
		want := genai.APIError{Code: http.StatusServiceUnavailable}
		_, err := executeWithRetry(context.Background(), single, "test", func(context.Context) (string, error) {
			return "", want
		})
		assert.Equal(t, want, err)
	})

	t.Run("cancelled context stops backoff", func(t *testing.T) {
		slow := newRetrier(3, errors.NewNopLogger())
		slow.baseDelay = time.Hour
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := executeWithRetry(ctx, slow, "test", func(context.Context) (string, error) {
			calls++
			cancel()
			return "", genai.APIError{Code: http.StatusBadGateway}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestRetrierBackoff(t *testing.T) {
	r := newRetrier(5, errors.NewNopLogger())

	first := r.backoff(1)
	assert.GreaterOrEqual(t, first, time.Second)
	assert.Less(t, first, 1100*time.Millisecond)

	assert.GreaterOrEqual(t, r.backoff(3), 4*time.Second)
	assert.Equal(t, maxRetryBackoff, r.backoff(10))
	assert.Equal(t, 0, newRetrier(-1, nil).maxRetries)
}
