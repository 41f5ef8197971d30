package gemini

import (
	"google.golang.org/genai"
)

// GeminiProvider es la base compartida de los servicios Gemini
type GeminiProvider struct {
	Client *genai.Client
	model  string
}

// NewGeminiProvider creates a new instance of GeminiProvider
func NewGeminiProvider(client *genai.Client, model string) *GeminiProvider {
	return &GeminiProvider{
		Client: client,
		model:  model,
	}
}

// GetModelName retorna el modelo configurado
func (g *GeminiProvider) GetModelName() string {
	return g.model
}

// GetProviderName retorna el nombre del proveedor
func (g *GeminiProvider) GetProviderName() string {
	return "gemini"
}

// generateConfig es la configuración de generación compartida por los
// servicios del paquete.
func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     float32Ptr(0.3),
		MaxOutputTokens: int32(4000),
	}
}

func float32Ptr(f float32) *float32 {
	return &f
}
