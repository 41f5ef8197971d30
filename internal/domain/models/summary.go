package models

import "time"

// SummaryKind distingue el resumen parcial de un grupo del resumen consolidado final.
type SummaryKind string

const (
	SummaryKindChunk SummaryKind = "chunk"
	SummaryKindFinal SummaryKind = "final"
)

type (
	// ChunkGroup agrupa textos consecutivos que caben juntos dentro del presupuesto.
	// Invariante: EstimatedTokens <= presupuesto, salvo que el grupo contenga un
	// único texto que por sí solo lo exceda.
	ChunkGroup struct {
		Texts           []string
		EstimatedTokens int
	}

	// SummaryRequest es el pedido de resumen que recibe un proveedor de IA.
	SummaryRequest struct {
		Content    string
		Kind       SummaryKind
		Repository string
		// Part y TotalParts ubican al grupo dentro de su nivel cuando el
		// contenido se dividió en más de un grupo.
		Part       int
		TotalParts int
	}

	// Summary es el resultado final de la resumización jerárquica.
	Summary struct {
		Repository  RepositoryRef
		Kind        SummaryKind
		Provider    string
		Model       string
		GeneratedAt time.Time
		Text        string
	}
)
