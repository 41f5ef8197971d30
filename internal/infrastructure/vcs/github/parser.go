package github

import (
	"strings"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/regex"
)

// ParseRepoRef extrae owner y nombre desde una URL https, una URL ssh o la
// forma corta "owner/repo".
func ParseRepoRef(input string) (models.RepositoryRef, error) {
	input = strings.TrimSpace(input)

	if m := regex.SSHRepo.FindStringSubmatch(input); m != nil {
		return newRepoRef(m[2], m[3]), nil
	}
	if m := regex.HTTPSRepo.FindStringSubmatch(input); m != nil {
		return newRepoRef(m[2], m[3]), nil
	}
	if m := regex.RepoSlug.FindStringSubmatch(input); m != nil {
		return newRepoRef(m[1], m[2]), nil
	}

	return models.RepositoryRef{}, apperrors.ErrInvalidRepoRef.WithContext("input", input)
}

// ParseRepoKey interpreta la clave "owner_repo" usada en los nombres de
// archivo. El split es sobre el primer guión bajo; también acepta "owner/repo".
func ParseRepoKey(input string) (models.RepositoryRef, error) {
	input = strings.TrimSpace(input)

	if strings.Contains(input, "/") {
		return ParseRepoRef(input)
	}

	owner, name, found := strings.Cut(input, "_")
	if !found || owner == "" || name == "" {
		return models.RepositoryRef{}, apperrors.ErrInvalidRepoRef.WithContext("input", input)
	}
	return models.RepositoryRef{Owner: owner, Name: name}, nil
}

func newRepoRef(owner, name string) models.RepositoryRef {
	return models.RepositoryRef{
		Owner: owner,
		Name:  strings.TrimSuffix(name, ".git"),
	}
}
