package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeBackend struct {
	response string
	err      error
	calls    int
	model    string
	prompt   string
	closed   bool
}

func (f *fakeBackend) generate(_ context.Context, model string, prompt string) (string, error) {
	f.calls++
	f.model = model
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func newFakeGenerator(b *fakeBackend) *TextGenerator {
	return &TextGenerator{backend: b, config: DefaultConfig()}
}

func TestNewTextGenerator_MissingKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		g := NewTextGenerator(context.Background(), nil, key)
		require.NotNil(t, g)

		var configErr *ConfigError
		require.ErrorAs(t, g.Err(), &configErr)
		assert.ErrorIs(t, g.Err(), ErrNotConfigured)

		_, err := g.Generate(context.Background(), "x")
		assert.ErrorAs(t, err, &configErr)
		assert.Equal(t, MessageNotConfigured, UserMessage(err))
		assert.Nil(t, g.backend, "no client may be created without a key")
		assert.NoError(t, g.Close())
	}
}

func TestNewTextGenerator_NoModel(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}, Tier: TierLite}
	g := NewTextGenerator(context.Background(), config, "key")

	var configErr *ConfigError
	assert.ErrorAs(t, g.Err(), &configErr)
}

func TestGenerate_CleansResponse(t *testing.T) {
	b := &fakeBackend{response: "# Heading\n\nBody text."}
	g := newFakeGenerator(b)

	text, err := g.Generate(context.Background(), "Write an introduction")
	require.NoError(t, err)
	assert.Equal(t, "Body text.", text)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, "gemini-2.5-flash-lite", b.model)
	assert.Equal(t, "Write an introduction", b.prompt)
}

func TestGenerate_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantAuth    bool
		wantMessage string
	}{
		{
			name:        "invalid key message",
			err:         errors.New("googleapi: Error 400: API key not valid. Please pass a valid API key."),
			wantAuth:    true,
			wantMessage: MessageInvalidKey,
		},
		{
			name:        "unauthenticated status",
			err:         status.Error(codes.Unauthenticated, "missing credentials"),
			wantAuth:    true,
			wantMessage: MessageInvalidKey,
		},
		{
			name:        "permission denied status",
			err:         status.Error(codes.PermissionDenied, "key disabled"),
			wantAuth:    true,
			wantMessage: MessageInvalidKey,
		},
		{
			name:        "unavailable",
			err:         status.Error(codes.Unavailable, "try later"),
			wantMessage: MessageFailed,
		},
		{
			name:        "network",
			err:         errors.New("dial tcp: connection refused"),
			wantMessage: MessageFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{err: tt.err}
			g := newFakeGenerator(b)

			text, err := g.Generate(context.Background(), "prompt")
			require.Error(t, err)
			assert.Empty(t, text)
			assert.Equal(t, 1, b.calls, "no retry")
			assert.ErrorIs(t, err, tt.err)

			var authErr *AuthError
			var genErr *GenerationError
			if tt.wantAuth {
				assert.ErrorAs(t, err, &authErr)
			} else {
				assert.ErrorAs(t, err, &genErr)
			}
			assert.Equal(t, tt.wantMessage, UserMessage(err))
		})
	}
}

func TestUserMessage_Nil(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
}

func TestClose_ReleasesBackend(t *testing.T) {
	b := &fakeBackend{}
	g := newFakeGenerator(b)
	require.NoError(t, g.Close())
	assert.True(t, b.closed)
}

func TestGenerator_Interface(_ *testing.T) {
	var _ Generator = (*TextGenerator)(nil)
}
