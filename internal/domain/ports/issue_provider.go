package ports

import (
	"context"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
)

// IssueProvider define los métodos para descargar issues de un proveedor de hosting de código.
type IssueProvider interface {
	// FetchIssues descarga los issues abiertos del repositorio en orden de
	// creación descendente, respetando el límite y la política de reintentos.
	// Las fallas de comentarios individuales no abortan la descarga completa.
	FetchIssues(ctx context.Context, opts models.FetchOptions) (*models.FetchResult, error)

	// Repository retorna la referencia del repositorio asociado al cliente.
	Repository() models.RepositoryRef
}
