package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/ai"
	"google.golang.org/genai"
)

var _ ports.Summarizer = (*GeminiSummarizer)(nil)

type GeminiSummarizer struct {
	*GeminiProvider
	config *config.Config
	trans  *i18n.Translations
}

func NewGeminiSummarizer(ctx context.Context, cfg *config.Config, trans *i18n.Translations) (*GeminiSummarizer, error) {
	apiKey := cfg.APIKeyFor(config.AIGemini)
	if apiKey == "" {
		msg := trans.GetMessage("error.missing_api_key", 0, map[string]interface{}{
			"Provider": "gemini",
		})
		return nil, apperrors.ErrAPIKeyMissing.WithError(fmt.Errorf("%s", msg))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		msg := trans.GetMessage("error.ai_client", 0, map[string]interface{}{
			"Error": err,
		})
		return nil, fmt.Errorf("%s", msg)
	}

	return &GeminiSummarizer{
		GeminiProvider: NewGeminiProvider(client, string(cfg.ModelFor(config.AIGemini))),
		config:         cfg,
		trans:          trans,
	}, nil
}

// Summarize genera el resumen pedido con una única llamada al modelo.
func (s *GeminiSummarizer) Summarize(ctx context.Context, req models.SummaryRequest) (string, error) {
	prompt := s.buildPrompt(req)

	resp, err := s.Client.Models.GenerateContent(ctx, s.GetModelName(), genai.Text(prompt), generateConfig())
	if err != nil {
		msg := s.trans.GetMessage("error.generating_summary", 0, map[string]interface{}{
			"Error": err.Error(),
		})
		return "", fmt.Errorf("%s: %w", msg, err)
	}

	text := strings.TrimSpace(formatResponse(resp))
	if text == "" {
		return "", apperrors.ErrEmptyAIResponse
	}

	return text, nil
}

// buildPrompt combina las instrucciones de sistema con el pedido del usuario.
// La API de texto plano de Gemini recibe todo como un único contenido.
func (s *GeminiSummarizer) buildPrompt(req models.SummaryRequest) string {
	locale := s.config.Language
	return ai.GetSystemPrompt(locale) + "\n\n" + ai.BuildUserPrompt(locale, req)
}

// formatResponse junta el texto de todos los candidates de la respuesta.
func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					formattedContent.WriteString(part.Text)
				}
			}
		}
	}
	return formattedContent.String()
}
