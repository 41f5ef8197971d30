package models

import "time"

type (
	// Issue representa un issue abierto de GitHub con sus metadatos y comentarios.
	Issue struct {
		Number       int
		Title        string
		Author       string
		CreatedAt    time.Time
		UpdatedAt    time.Time
		Labels       []string
		Assignees    []string
		Body         string
		CommentCount int
		Comments     []Comment
	}

	// Comment es un comentario individual dentro del hilo de un issue.
	Comment struct {
		Author    string
		CreatedAt time.Time
		Body      string
	}
)
