package openai

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
)

// OpenAIProviderFactory implementa AIProviderFactory para OpenAI
type OpenAIProviderFactory struct{}

// NewOpenAIProviderFactory crea una nueva factory para OpenAI
func NewOpenAIProviderFactory() *OpenAIProviderFactory {
	return &OpenAIProviderFactory{}
}

// CreateSummarizer crea el servicio OpenAI que resume issues
func (f *OpenAIProviderFactory) CreateSummarizer(
	_ context.Context,
	cfg *config.Config,
	trans *i18n.Translations,
) (ports.Summarizer, error) {
	return NewOpenAISummarizer(cfg, trans)
}

// ValidateConfig valida la configuración de OpenAI
func (f *OpenAIProviderFactory) ValidateConfig(cfg *config.Config) error {
	providerCfg, exists := cfg.AIProviders["openai"]
	if !exists {
		return fmt.Errorf("configuracion de openai no encontrada")
	}

	if providerCfg.APIKey == "" {
		return fmt.Errorf("openai API key es requerida")
	}

	return nil
}

// Name retorna el nombre del proveedor
func (f *OpenAIProviderFactory) Name() string {
	return "openai"
}
