package services

import (
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
)

// DefaultTokenBudget es el máximo de tokens estimados que entran en una sola
// llamada al modelo. Aproximación conservadora para los modelos soportados.
const DefaultTokenBudget = 100000

// EstimateTokens aproxima la cantidad de tokens de un texto. La regla es
// ~4 caracteres por token, suficiente para decidir cortes de chunks.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// ChunkPlanner agrupa textos de documentos en grupos que caben dentro del
// presupuesto de tokens del modelo.
type ChunkPlanner struct {
	budget int
}

func NewChunkPlanner(budget int) *ChunkPlanner {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	return &ChunkPlanner{budget: budget}
}

func (p *ChunkPlanner) Budget() int {
	return p.budget
}

// GroupTexts empaqueta los textos en orden: acumula en el grupo actual hasta
// que el siguiente texto no entra en el presupuesto, y ahí abre uno nuevo.
// Un texto que solo ya excede el presupuesto forma su propio grupo de un
// elemento, nunca se corta por la mitad.
func (p *ChunkPlanner) GroupTexts(texts []string) []models.ChunkGroup {
	var groups []models.ChunkGroup
	var current models.ChunkGroup

	for _, text := range texts {
		size := EstimateTokens(text)
		if len(current.Texts) > 0 && current.EstimatedTokens+size > p.budget {
			groups = append(groups, current)
			current = models.ChunkGroup{}
		}
		current.Texts = append(current.Texts, text)
		current.EstimatedTokens += size
	}

	if len(current.Texts) > 0 {
		groups = append(groups, current)
	}
	return groups
}
