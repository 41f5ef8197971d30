package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/logger"
	"github.com/Tomas-vilte/IssueDigest/internal/regex"
)

var _ ports.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader lee los archivos de issues que el DocumentWriter dejó en
// disco, respetando el orden de los índices.
type DocumentLoader struct{}

func NewDocumentLoader() *DocumentLoader {
	return &DocumentLoader{}
}

// LoadDocuments busca los archivos indexados del repositorio y, si no hay,
// cae al patrón sin índice (descarga que entró en un solo archivo). Retorna
// el contenido de cada archivo en orden de documento.
func (l *DocumentLoader) LoadDocuments(ctx context.Context, repo models.RepositoryRef, issuesDir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(issuesDir, repo.Key()+"_issues_*.md"))
	if err != nil {
		return nil, apperrors.ErrNoIssueFiles.WithError(err).WithContext("dir", issuesDir)
	}
	if len(files) == 0 {
		files, err = filepath.Glob(filepath.Join(issuesDir, repo.Key()+"_*.md"))
		if err != nil {
			return nil, apperrors.ErrNoIssueFiles.WithError(err).WithContext("dir", issuesDir)
		}
	}
	if len(files) == 0 {
		return nil, apperrors.ErrNoIssueFiles.
			WithContext("repo", repo.Key()).
			WithContext("dir", issuesDir)
	}

	sortDocumentFiles(files)

	contents := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, apperrors.ErrReadDocument.WithError(err).WithContext("path", file)
		}
		contents = append(contents, string(data))
	}

	logger.Debug(ctx, "archivos de issues cargados", "repo", repo.Key(), "files", len(contents))
	return contents, nil
}

// sortDocumentFiles ordena por índice numérico cuando el nombre lo trae, para
// que _issues_10 no quede antes que _issues_2.
func sortDocumentFiles(files []string) {
	sort.Slice(files, func(i, j int) bool {
		ni, iOK := documentIndex(files[i])
		nj, jOK := documentIndex(files[j])
		if iOK && jOK {
			return ni < nj
		}
		return files[i] < files[j]
	})
}

func documentIndex(path string) (int, bool) {
	m := regex.IssueFileIndex.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
