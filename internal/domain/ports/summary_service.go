package ports

import (
	"context"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
)

// SummaryService orquesta la resumización jerárquica de los issues de un repositorio.
type SummaryService interface {
	// SummarizeRepository carga los archivos de issues, genera el resumen
	// jerárquico y lo persiste en outputDir. Retorna la ruta del archivo escrito.
	SummarizeRepository(ctx context.Context, repo models.RepositoryRef, issuesDir, outputDir string) (string, error)

	// SummarizeContents genera el resumen jerárquico a partir de los textos ya
	// cargados, sin tocar el disco.
	SummarizeContents(ctx context.Context, repo models.RepositoryRef, contents []string) (*models.Summary, error)
}
