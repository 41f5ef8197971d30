package di

import (
	"context"
	"fmt"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/ai/registry"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/IssueDigest/internal/services"
)

// Container gestiona las dependencias de la aplicación
type Container struct {
	config       *config.Config
	translations *i18n.Translations

	// Registries
	aiRegistry *registry.AIProviderRegistry

	// Services (lazy initialized)
	documentWriter ports.DocumentWriter
	documentLoader ports.DocumentLoader
	summaryService ports.SummaryService
}

// NewContainer crea un nuevo contenedor de dependencias
func NewContainer(cfg *config.Config, trans *i18n.Translations) *Container {
	return &Container{
		config:       cfg,
		translations: trans,
		aiRegistry:   registry.NewAIProviderRegistry(),
	}
}

// RegisterAIProvider registra un proveedor de IA
func (c *Container) RegisterAIProvider(name string, factory registry.AIProviderFactory) error {
	return c.aiRegistry.Register(name, factory)
}

// GetAIRegistry retorna el registro de proveedores AI
func (c *Container) GetAIRegistry() *registry.AIProviderRegistry {
	return c.aiRegistry
}

// GetIssueProvider crea el cliente de issues para el repositorio pedido. No
// se cachea: cada repositorio necesita su propio cliente. Un token explícito
// pisa al de la configuración.
func (c *Container) GetIssueProvider(repo models.RepositoryRef, token string) ports.IssueProvider {
	if token == "" {
		token = c.config.GitHubToken()
	}
	return github.NewGitHubClient(repo.Owner, repo.Name, token, c.translations)
}

// GetDocumentWriter retorna el escritor de documentos (lazy initialization)
func (c *Container) GetDocumentWriter() ports.DocumentWriter {
	if c.documentWriter == nil {
		c.documentWriter = services.NewDocumentWriter()
	}
	return c.documentWriter
}

// GetDocumentLoader retorna el lector de documentos (lazy initialization)
func (c *Container) GetDocumentLoader() ports.DocumentLoader {
	if c.documentLoader == nil {
		c.documentLoader = services.NewDocumentLoader()
	}
	return c.documentLoader
}

// GetSummarizer crea el resumidor del proveedor de IA activo
func (c *Container) GetSummarizer(ctx context.Context) (ports.Summarizer, error) {
	active := c.config.AIConfig.ActiveAI
	if active == "" {
		return nil, fmt.Errorf("no hay IA activa configurada")
	}

	aiFactory, err := c.aiRegistry.Get(string(active))
	if err != nil {
		return nil, fmt.Errorf("proveedor de IA '%s' no encontrado: %w", active, err)
	}

	summarizer, err := aiFactory.CreateSummarizer(ctx, c.config, c.translations)
	if err != nil {
		return nil, fmt.Errorf("error al crear el resumidor de IA: %w", err)
	}
	return summarizer, nil
}

// GetSummaryService retorna el servicio de resúmenes (lazy initialization)
func (c *Container) GetSummaryService(ctx context.Context) (ports.SummaryService, error) {
	if c.summaryService != nil {
		return c.summaryService, nil
	}

	summarizer, err := c.GetSummarizer(ctx)
	if err != nil {
		return nil, err
	}

	c.summaryService = services.NewIssueSummaryService(
		summarizer,
		services.NewChunkPlanner(services.DefaultTokenBudget),
		c.GetDocumentLoader(),
	)
	return c.summaryService, nil
}

// GetConfig retorna la configuración
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTranslations retorna las traducciones
func (c *Container) GetTranslations() *i18n.Translations {
	return c.translations
}
