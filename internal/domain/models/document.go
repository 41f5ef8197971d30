package models

// Document es un grupo contiguo de issues destinado a un único archivo markdown.
type Document struct {
	// Index es la posición 1-based del documento dentro de la partición.
	Index int
	// Total es la cantidad de documentos producidos por la partición.
	Total  int
	Issues []Issue
}
