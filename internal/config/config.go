package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type (
	// Config es el snapshot inmutable del entorno, leído una sola vez al inicio
	Config struct {
		Language     string
		MaxPerFile   int
		IssuesDir    string
		SummariesDir string

		AIConfig    AIConfig
		AIProviders map[string]ProviderConfig
		VCSConfigs  map[string]VCSConfig
	}

	ProviderConfig struct {
		APIKey string
	}

	VCSConfig struct {
		Token string
	}

	AIConfig struct {
		ActiveAI AI
		Models   map[AI]Model
	}
)

const (
	defaultMaxPerFile   = 50
	defaultIssuesDir    = "results/issues"
	defaultSummariesDir = "results/summaries"
)

// LoadConfig construye el snapshot desde las variables de entorno.
// El .env ya tiene que estar cargado (godotenv en main).
func LoadConfig() (*Config, error) {
	maxPerFile := defaultMaxPerFile
	if v := os.Getenv("MAX_ISSUES_PER_FILE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("valor inválido para MAX_ISSUES_PER_FILE: %q", v)
		}
		maxPerFile = n
	}

	activeAI := AI(strings.ToLower(os.Getenv("LLM_PROVIDER")))
	if activeAI == "" {
		activeAI = AIOpenAI
	}

	models := map[AI]Model{
		AIGemini: DefaultModelForAI(AIGemini),
		AIOpenAI: DefaultModelForAI(AIOpenAI),
	}
	if m := os.Getenv("LLM_MODEL"); m != "" {
		models[activeAI] = Model(m)
	}

	return &Config{
		Language:     GetLocaleConfig(os.Getenv("ISSUEDIGEST_LANG")),
		MaxPerFile:   maxPerFile,
		IssuesDir:    defaultIssuesDir,
		SummariesDir: defaultSummariesDir,
		AIConfig: AIConfig{
			ActiveAI: activeAI,
			Models:   models,
		},
		AIProviders: map[string]ProviderConfig{
			"gemini": {APIKey: os.Getenv("GEMINI_API_KEY")},
			"openai": {APIKey: os.Getenv("OPENAI_API_KEY")},
		},
		VCSConfigs: map[string]VCSConfig{
			"github": {Token: os.Getenv("GITHUB_TOKEN")},
		},
	}, nil
}

// GitHubToken retorna el token configurado para GitHub, si existe
func (c *Config) GitHubToken() string {
	if c.VCSConfigs == nil {
		return ""
	}
	return c.VCSConfigs["github"].Token
}

// APIKeyFor retorna la API key del proveedor de IA indicado
func (c *Config) APIKeyFor(ai AI) string {
	if c.AIProviders == nil {
		return ""
	}
	return c.AIProviders[string(ai)].APIKey
}

// ModelFor retorna el modelo configurado para el proveedor indicado
func (c *Config) ModelFor(ai AI) Model {
	if m, ok := c.AIConfig.Models[ai]; ok && m != "" {
		return m
	}
	return DefaultModelForAI(ai)
}
