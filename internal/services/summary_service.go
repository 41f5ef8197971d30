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
)

const (
	// documentSeparator une textos de documentos crudos dentro de un grupo.
	documentSeparator = "\n\n"
	// summarySeparator une resúmenes parciales dentro de un grupo.
	summarySeparator = "\n\n---\n\n"

	summaryMaxAttempts = 3
	summaryBackoffMin  = 4 * time.Second
	summaryBackoffMax  = 10 * time.Second
)

type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ ports.SummaryService = (*IssueSummaryService)(nil)

// IssueSummaryService orquesta la resumización jerárquica: agrupa los
// documentos bajo el presupuesto de tokens, resume cada grupo y consolida
// los resúmenes parciales nivel por nivel hasta que queda uno solo.
type IssueSummaryService struct {
	summarizer ports.Summarizer
	planner    *ChunkPlanner
	loader     ports.DocumentLoader
	sleep      sleepFunc
}

func NewIssueSummaryService(summarizer ports.Summarizer, planner *ChunkPlanner, loader ports.DocumentLoader) *IssueSummaryService {
	return &IssueSummaryService{
		summarizer: summarizer,
		planner:    planner,
		loader:     loader,
		sleep:      sleepContext,
	}
}

// SummarizeRepository carga los archivos de issues del repositorio, genera el
// resumen jerárquico y lo persiste en outputDir. Retorna la ruta escrita.
func (s *IssueSummaryService) SummarizeRepository(ctx context.Context, repo models.RepositoryRef, issuesDir, outputDir string) (string, error) {
	contents, err := s.loader.LoadDocuments(ctx, repo, issuesDir)
	if err != nil {
		return "", err
	}
	logger.Info(ctx, "generando resumen", "repo", repo.String(), "files", len(contents))

	summary, err := s.SummarizeContents(ctx, repo, contents)
	if err != nil {
		return "", err
	}
	return s.writeSummary(ctx, summary, outputDir)
}

// SummarizeContents reduce los textos de documentos a un único resumen. Cada
// nivel agrupa los textos bajo el presupuesto, pide un resumen por grupo y
// recurre sobre los resúmenes parciales. La reducción tiene que achicar el
// total estimado en cada nivel; si no lo hace, el proceso corta con error en
// lugar de quedarse ciclando.
func (s *IssueSummaryService) SummarizeContents(ctx context.Context, repo models.RepositoryRef, contents []string) (*models.Summary, error) {
	if len(contents) == 0 {
		return nil, apperrors.ErrNoIssueFiles.WithContext("repo", repo.Key())
	}

	texts := contents
	kind := models.SummaryKindChunk
	separator := documentSeparator
	prevTotal := 0

	for level := 0; ; level++ {
		total := estimateTotal(texts)
		if level > 0 && total >= prevTotal {
			return nil, apperrors.ErrSummaryNotConverging.
				WithContext("level", level).
				WithContext("tokens", total).
				WithContext("previous_tokens", prevTotal)
		}
		prevTotal = total

		groups := s.planner.GroupTexts(texts)
		if len(groups) == 1 {
			text, err := s.summarizeGroup(ctx, groups[0], repo, kind, separator, 1, 1)
			if err != nil {
				return nil, err
			}
			logger.Info(ctx, "resumen final generado", "repo", repo.String(), "levels", level+1)
			return s.newSummary(repo, text), nil
		}

		logger.Info(ctx, "contenido dividido en grupos", "level", level, "groups", len(groups), "tokens", total)

		summaries := make([]string, 0, len(groups))
		for i, group := range groups {
			text, err := s.summarizeGroup(ctx, group, repo, kind, separator, i+1, len(groups))
			if err != nil {
				return nil, err
			}
			summaries = append(summaries, text)
		}

		// el siguiente nivel consolida los resúmenes parciales
		texts = summaries
		kind = models.SummaryKindFinal
		separator = summarySeparator
	}
}

func (s *IssueSummaryService) summarizeGroup(ctx context.Context, group models.ChunkGroup, repo models.RepositoryRef, kind models.SummaryKind, separator string, part, totalParts int) (string, error) {
	req := models.SummaryRequest{
		Content:    strings.Join(group.Texts, separator),
		Kind:       kind,
		Repository: repo.String(),
		Part:       part,
		TotalParts: totalParts,
	}

	attempt := 1
	for {
		text, err := s.summarizer.Summarize(ctx, req)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", apperrors.ErrSummarizationFailed.WithError(err).WithContext("part", part)
		}
		if attempt >= summaryMaxAttempts {
			return "", apperrors.ErrSummarizationFailed.
				WithError(err).
				WithContext("part", part).
				WithContext("attempts", attempt)
		}

		wait := summaryBackoff(attempt)
		logger.Warn(ctx, "reintentando llamada al modelo", "part", part, "attempt", attempt, "wait", wait, "error", err)
		if serr := s.sleep(ctx, wait); serr != nil {
			return "", apperrors.ErrSummarizationFailed.WithError(serr).WithContext("part", part)
		}
		attempt++
	}
}

func summaryBackoff(attempt int) time.Duration {
	wait := summaryBackoffMin << (attempt - 1)
	if wait > summaryBackoffMax {
		wait = summaryBackoffMax
	}
	return wait
}

func estimateTotal(texts []string) int {
	total := 0
	for _, text := range texts {
		total += EstimateTokens(text)
	}
	return total
}

func (s *IssueSummaryService) newSummary(repo models.RepositoryRef, text string) *models.Summary {
	return &models.Summary{
		Repository:  repo,
		Kind:        models.SummaryKindFinal,
		Provider:    s.summarizer.GetProviderName(),
		Model:       s.summarizer.GetModelName(),
		GeneratedAt: time.Now().UTC(),
		Text:        text,
	}
}

// writeSummary persiste el resumen con su encabezado de proveedor y modelo.
func (s *IssueSummaryService) writeSummary(ctx context.Context, summary *models.Summary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", apperrors.ErrCreateDirectory.WithError(err).WithContext("dir", outputDir)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Summary of GitHub Issues for %s\n\n", summary.Repository.String())
	fmt.Fprintf(&b, "*Generated using %s (%s)*\n\n", summary.Provider, summary.Model)
	b.WriteString("---\n\n")
	b.WriteString(summary.Text)

	path := filepath.Join(outputDir, summary.Repository.Key()+"_summary.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", apperrors.ErrWriteDocument.WithError(err).WithContext("path", path)
	}

	logger.Info(ctx, "resumen guardado", "path", path)
	return path, nil
}
