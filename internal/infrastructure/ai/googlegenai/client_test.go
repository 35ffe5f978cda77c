package googlegenai

import (
	"errors"
	"testing"

	"github.com/chefaid/chefaid/internal/infrastructure/ai/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText("## Tacos"),
				genai.NewPartFromText("more"),
			}, genai.RoleModel),
		}},
	}
	assert.Equal(t, "## Tacos", firstText(resp))
}

func TestTranslateError(t *testing.T) {
	t.Run("api error keeps message", func(t *testing.T) {
		err := translateError(genai.APIError{Code: 403, Message: "Permission denied", Status: "PERMISSION_DENIED"})

		var apiErr *gemini.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Permission denied", err.Error())
		assert.Equal(t, 403, apiErr.StatusCode)
	})

	t.Run("api error without message", func(t *testing.T) {
		err := translateError(genai.APIError{Code: 500})

		assert.Equal(t, "API error", err.Error())
	})

	t.Run("other errors are transport errors", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")

		err := translateError(cause)

		var transportErr *gemini.TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.ErrorIs(t, err, cause)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{}, zap.NewNop())

	assert.Equal(t, gemini.DefaultModel, c.config.Model)
	assert.Equal(t, float32(0.9), c.config.Temperature)
	assert.Equal(t, int32(2048), c.config.MaxOutputTokens)
}
