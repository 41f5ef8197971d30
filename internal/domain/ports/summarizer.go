package ports

import (
	"context"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
)

// Summarizer define la interfaz para generar resúmenes de issues con un modelo de IA.
type Summarizer interface {
	// Summarize genera el resumen del contenido pedido. Para Kind chunk el
	// prompt incluye la parte y el total; para Kind final consolida resúmenes
	// parciales en uno solo.
	Summarize(ctx context.Context, req models.SummaryRequest) (string, error)

	// GetModelName retorna el nombre del modelo actual (ej: "gemini-2.5-flash")
	GetModelName() string

	// GetProviderName retorna el nombre del proveedor (ej: "gemini", "openai")
	GetProviderName() string
}
