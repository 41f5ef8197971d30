package ports

import (
	"context"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
)

// DocumentWriter particiona los issues descargados y los persiste como archivos markdown.
type DocumentWriter interface {
	// WriteDocuments divide los issues en documentos de hasta maxPerFile issues
	// y escribe un archivo por documento en outputDir. Retorna las rutas escritas.
	WriteDocuments(ctx context.Context, result *models.FetchResult, maxPerFile int, outputDir string) ([]string, error)
}

// DocumentLoader recupera los archivos de issues persistidos de un repositorio.
type DocumentLoader interface {
	// LoadDocuments lee los archivos de issues del repositorio en orden de
	// nombre y retorna el contenido de cada uno.
	LoadDocuments(ctx context.Context, repo models.RepositoryRef, issuesDir string) ([]string, error)
}
