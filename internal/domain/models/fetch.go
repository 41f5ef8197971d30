package models

import "time"

type (
	// FetchOptions controla cuántos issues se descargan y si se incluyen los comentarios.
	FetchOptions struct {
		// MaxIssues limita la cantidad total de issues. Cero significa sin límite.
		MaxIssues int
		// IncludeComments indica si se descargan los hilos de comentarios.
		IncludeComments bool
	}

	// FetchResult es el resultado completo de una descarga de issues.
	FetchResult struct {
		Repository RepositoryRef
		FetchedAt  time.Time
		Issues     []Issue
		// Degradations registra los issues cuyos comentarios no pudieron
		// descargarse. El issue igual se conserva, con el hilo vacío.
		Degradations []CommentDegradation
	}

	// CommentDegradation identifica un hilo de comentarios que falló tras agotar los reintentos.
	CommentDegradation struct {
		IssueNumber int
		Reason      string
	}
)

// Degraded indica si la descarga perdió al menos un hilo de comentarios.
func (r *FetchResult) Degraded() bool {
	return len(r.Degradations) > 0
}
