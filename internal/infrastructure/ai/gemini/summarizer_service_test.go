package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func testConfig(apiKey string) *config.Config {
	return &config.Config{
		Language: "en",
		AIConfig: config.AIConfig{
			ActiveAI: config.AIGemini,
			Models: map[config.AI]config.Model{
				config.AIGemini: config.ModelGeminiV25Flash,
			},
		},
		AIProviders: map[string]config.ProviderConfig{
			"gemini": {APIKey: apiKey},
		},
	}
}

func TestNewGeminiSummarizer(t *testing.T) {
	t.Run("should fail without an API key", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		cfg := testConfig("")
		trans, err := i18n.NewTranslations("en", "")
		require.NoError(t, err)

		// act
		service, err := NewGeminiSummarizer(ctx, cfg, trans)

		// assert
		assert.Nil(t, service)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrAPIKeyMissing))
	})

	t.Run("should expose the provider and model names", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		cfg := testConfig("test-api-key")
		trans, err := i18n.NewTranslations("en", "")
		require.NoError(t, err)

		// act
		service, err := NewGeminiSummarizer(ctx, cfg, trans)

		// assert
		require.NoError(t, err)
		assert.Equal(t, "gemini", service.GetProviderName())
		assert.Equal(t, "gemini-2.5-flash", service.GetModelName())
	})
}

func TestGeminiSummarizer_buildPrompt(t *testing.T) {
	t.Run("should combine system instructions with the user request", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		cfg := testConfig("test-api-key")
		trans, err := i18n.NewTranslations("en", "")
		require.NoError(t, err)
		service, err := NewGeminiSummarizer(ctx, cfg, trans)
		require.NoError(t, err)

		req := models.SummaryRequest{
			Content:    "## Issue #7: flaky test",
			Kind:       models.SummaryKindChunk,
			Repository: "golang/go",
			Part:       1,
			TotalParts: 1,
		}

		// act
		prompt := service.buildPrompt(req)

		// assert
		assert.Contains(t, prompt, "expert at analyzing GitHub issues")
		assert.Contains(t, prompt, "## Issue #7: flaky test")
		assert.Contains(t, prompt, "golang/go")
	})

	t.Run("should build the prompt in Spanish when configured", func(t *testing.T) {
		// arrange
		ctx := context.Background()
		cfg := testConfig("test-api-key")
		cfg.Language = "es"
		trans, err := i18n.NewTranslations("es", "")
		require.NoError(t, err)
		service, err := NewGeminiSummarizer(ctx, cfg, trans)
		require.NoError(t, err)

		req := models.SummaryRequest{
			Content:    "contenido",
			Kind:       models.SummaryKindFinal,
			Repository: "golang/go",
			Part:       1,
			TotalParts: 1,
		}

		// act
		prompt := service.buildPrompt(req)

		// assert
		assert.Contains(t, prompt, "Sos un experto")
		assert.Contains(t, prompt, "resumen final consolidado")
	})
}

func TestFormatResponse(t *testing.T) {
	t.Run("should join the text of every part", func(t *testing.T) {
		// arrange
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "hello "}, {Text: "world"}}}},
			},
		}

		// act
		result := formatResponse(resp)

		// assert
		assert.Equal(t, "hello world", result)
	})

	t.Run("should return empty string for empty responses", func(t *testing.T) {
		assert.Equal(t, "", formatResponse(nil))
		assert.Equal(t, "", formatResponse(&genai.GenerateContentResponse{}))
		assert.Equal(t, "", formatResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: nil}},
		}))
	})
}
