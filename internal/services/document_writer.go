package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/logger"
	"github.com/Tomas-vilte/IssueDigest/internal/regex"
)

// dateLayout es el formato con el que se muestran las fechas en los markdown.
const dateLayout = "2006-01-02 15:04"

var _ ports.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter particiona los issues en documentos acotados y los persiste
// como archivos markdown con el formato canónico.
type DocumentWriter struct{}

func NewDocumentWriter() *DocumentWriter {
	return &DocumentWriter{}
}

// Partition divide los issues en documentos contiguos de hasta maxPerFile
// issues cada uno, numerados desde 1. Una entrada vacía produce cero
// documentos, no un documento vacío.
func (w *DocumentWriter) Partition(issues []models.Issue, maxPerFile int) []models.Document {
	if len(issues) == 0 {
		return nil
	}
	if maxPerFile <= 0 {
		maxPerFile = len(issues)
	}

	total := (len(issues) + maxPerFile - 1) / maxPerFile
	docs := make([]models.Document, 0, total)
	for start := 0; start < len(issues); start += maxPerFile {
		end := start + maxPerFile
		if end > len(issues) {
			end = len(issues)
		}
		docs = append(docs, models.Document{
			Index:  len(docs) + 1,
			Total:  total,
			Issues: issues[start:end],
		})
	}
	return docs
}

// WriteDocuments particiona el resultado de la descarga y escribe un archivo
// markdown por documento en outputDir. Retorna las rutas escritas en orden.
func (w *DocumentWriter) WriteDocuments(ctx context.Context, result *models.FetchResult, maxPerFile int, outputDir string) ([]string, error) {
	docs := w.Partition(result.Issues, maxPerFile)
	if len(docs) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, apperrors.ErrCreateDirectory.WithError(err).WithContext("dir", outputDir)
	}

	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		content := w.Render(result.Repository, doc, result.FetchedAt)
		path := filepath.Join(outputDir, documentFileName(result.Repository, doc))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, apperrors.ErrWriteDocument.WithError(err).WithContext("path", path)
		}
		logger.Debug(ctx, "documento de issues escrito", "path", path, "issues", len(doc.Issues))
		paths = append(paths, path)
	}
	return paths, nil
}

// Render produce el markdown canónico de un documento: encabezado del
// repositorio seguido de un bloque por issue separado por reglas horizontales.
func (w *DocumentWriter) Render(repo models.RepositoryRef, doc models.Document, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# GitHub Issues for %s\n\n", repo.String())
	fmt.Fprintf(&b, "*Generated on %s*\n\n", generatedAt.UTC().Format(dateLayout))
	fmt.Fprintf(&b, "**Total Open Issues:** %d\n\n", len(doc.Issues))
	b.WriteString("---\n\n")

	for _, issue := range doc.Issues {
		renderIssue(&b, issue)
	}
	return b.String()
}

func renderIssue(b *strings.Builder, issue models.Issue) {
	fmt.Fprintf(b, "## Issue #%d: %s\n\n", issue.Number, issue.Title)
	fmt.Fprintf(b, "**Author:** %s\n", issue.Author)
	fmt.Fprintf(b, "**Created:** %s\n", issue.CreatedAt.UTC().Format(dateLayout))
	if !issue.UpdatedAt.IsZero() {
		fmt.Fprintf(b, "**Updated:** %s\n", issue.UpdatedAt.UTC().Format(dateLayout))
	}
	if len(issue.Labels) > 0 {
		fmt.Fprintf(b, "**Labels:** %s\n", strings.Join(issue.Labels, ", "))
	}
	if len(issue.Assignees) > 0 {
		fmt.Fprintf(b, "**Assignees:** %s\n", strings.Join(issue.Assignees, ", "))
	}
	b.WriteString("\n### Description\n\n")

	description := cleanMarkdown(issue.Body)
	if description == "" {
		description = "No description provided."
	}
	fmt.Fprintf(b, "%s\n\n", description)

	if len(issue.Comments) > 0 {
		b.WriteString("### Comments\n\n")
		for _, comment := range issue.Comments {
			fmt.Fprintf(b, "#### Comment by %s (%s)\n\n", comment.Author, comment.CreatedAt.UTC().Format(dateLayout))
			fmt.Fprintf(b, "%s\n\n", cleanMarkdown(comment.Body))
		}
	}
	b.WriteString("---\n\n")
}

// cleanMarkdown colapsa los saltos de línea de más y recorta los bordes para
// que los cuerpos pegados de la API no rompan el formato del documento.
func cleanMarkdown(content string) string {
	if content == "" {
		return ""
	}
	return strings.TrimSpace(regex.ExcessNewlines.ReplaceAllString(content, "\n\n"))
}

func documentFileName(repo models.RepositoryRef, doc models.Document) string {
	if doc.Total > 1 {
		return fmt.Sprintf("%s_issues_%d.md", repo.Key(), doc.Index)
	}
	return fmt.Sprintf("%s_issues.md", repo.Key())
}
