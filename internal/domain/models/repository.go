package models

import "fmt"

// RepositoryRef identifica un repositorio remoto por su dueño y nombre.
type RepositoryRef struct {
	Owner string
	Name  string
}

// String retorna la forma canónica "owner/repo".
func (r RepositoryRef) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// Key retorna la clave usada para nombrar archivos: "owner_repo".
func (r RepositoryRef) Key() string {
	return fmt.Sprintf("%s_%s", r.Owner, r.Name)
}
