package openai

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
	openai "github.com/sashabaranov/go-openai"
)

var _ ports.Summarizer = (*OpenAISummarizer)(nil)

const (
	temperature     = 0.3
	maxOutputTokens = 4000
)

type OpenAISummarizer struct {
	client *openai.Client
	config *config.Config
	model  string
	trans  *i18n.Translations
}

func NewOpenAISummarizer(cfg *config.Config, trans *i18n.Translations) (*OpenAISummarizer, error) {
	apiKey := cfg.APIKeyFor(config.AIOpenAI)
	if apiKey == "" {
		msg := trans.GetMessage("error.missing_api_key", 0, map[string]interface{}{
			"Provider": "openai",
		})
		return nil, apperrors.ErrAPIKeyMissing.WithError(fmt.Errorf("%s", msg))
	}

	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		config: cfg,
		model:  string(cfg.ModelFor(config.AIOpenAI)),
		trans:  trans,
	}, nil
}

// Summarize genera el resumen pedido con una única llamada al modelo. El
// prompt de sistema y el de usuario van en mensajes separados, como espera
// la API de chat.
func (s *OpenAISummarizer) Summarize(ctx context.Context, req models.SummaryRequest) (string, error) {
	locale := s.config.Language

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: ai.GetSystemPrompt(locale),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: ai.BuildUserPrompt(locale, req),
			},
		},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		msg := s.trans.GetMessage("error.generating_summary", 0, map[string]interface{}{
			"Error": err.Error(),
		})
		return "", fmt.Errorf("%s: %w", msg, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.ErrEmptyAIResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", apperrors.ErrEmptyAIResponse
	}

	return text, nil
}

// GetModelName retorna el modelo configurado
func (s *OpenAISummarizer) GetModelName() string {
	return s.model
}

// GetProviderName retorna el nombre del proveedor
func (s *OpenAISummarizer) GetProviderName() string {
	return "openai"
}
