package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/IssueDigest/internal/logger"
	"github.com/Tomas-vilte/IssueDigest/internal/ui"
	"github.com/urfave/cli/v3"
)

// ServiceContainer reúne las dependencias de las dos etapas del pipeline.
// El contenedor de DI lo implementa.
type ServiceContainer interface {
	GetIssueProvider(repo models.RepositoryRef, token string) ports.IssueProvider
	GetDocumentWriter() ports.DocumentWriter
	GetSummaryService(ctx context.Context) (ports.SummaryService, error)
}

type PipelineCommandFactory struct {
	container ServiceContainer
}

func NewPipelineCommandFactory(container ServiceContainer) *PipelineCommandFactory {
	return &PipelineCommandFactory{
		container: container,
	}
}

func (f *PipelineCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "fetch-and-summarize",
		Aliases:     []string{"fas"},
		Usage:       t.GetMessage("pipeline.command_usage", 0, nil),
		Description: t.GetMessage("pipeline.command_description", 0, nil),
		ArgsUsage:   "<repo-url | owner/repo>",
		Flags:       f.createFlags(cfg, t),
		Action:      f.createAction(cfg, t),
	}
}

func (f *PipelineCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "issues-dir",
			Value: cfg.IssuesDir,
			Usage: t.GetMessage("pipeline.issues_dir_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "summaries-dir",
			Value: cfg.SummariesDir,
			Usage: t.GetMessage("pipeline.summaries_dir_flag_usage", 0, nil),
		},
		&cli.IntFlag{
			Name:    "max-issues",
			Aliases: []string{"m"},
			Usage:   t.GetMessage("fetch.max_issues_flag_usage", 0, nil),
		},
		&cli.IntFlag{
			Name:  "max-per-file",
			Value: int64(cfg.MaxPerFile),
			Usage: t.GetMessage("fetch.max_per_file_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: t.GetMessage("fetch.token_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: t.GetMessage("summarize.provider_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: t.GetMessage("summarize.model_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   t.GetMessage("fetch.verbose_flag_usage", 0, nil),
		},
	}
}

func (f *PipelineCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		logger.Initialize(os.Getenv("ISSUEDIGEST_DEBUG") != "", command.Bool("verbose"))

		repoArg := command.Args().First()
		if repoArg == "" {
			return fmt.Errorf("%s", t.GetMessage("pipeline.missing_repo_arg", 0, nil))
		}

		repo, err := github.ParseRepoRef(repoArg)
		if err != nil {
			return err
		}

		if err := applyModelFlags(cfg, command.String("provider"), command.String("model")); err != nil {
			return err
		}

		token := command.String("token")
		if token == "" {
			token = cfg.GitHubToken()
		}
		if token == "" {
			return apperrors.ErrTokenMissing
		}

		issuesDir := command.String("issues-dir")

		ui.PrintSectionBanner(t.GetMessage("pipeline.fetch_stage", 0, nil))
		empty, err := f.runFetchStage(ctx, command, t, repo, token, issuesDir)
		if err != nil {
			return err
		}
		if empty {
			return nil
		}

		ui.PrintSectionBanner(t.GetMessage("pipeline.summarize_stage", 0, nil))
		return f.runSummarizeStage(ctx, command, t, repo, issuesDir)
	}
}

// runFetchStage descarga los issues y los escribe en issuesDir. Retorna true
// cuando el repositorio no tiene issues abiertos y no hay nada que resumir.
func (f *PipelineCommandFactory) runFetchStage(
	ctx context.Context,
	command *cli.Command,
	t *i18n.Translations,
	repo models.RepositoryRef,
	token string,
	issuesDir string,
) (bool, error) {
	provider := f.container.GetIssueProvider(repo, token)

	spinner := ui.NewSmartSpinner(t.GetMessage("fetch.fetching_issues", 0, map[string]interface{}{
		"Repo": repo.String(),
	}))
	spinner.Start()

	result, err := provider.FetchIssues(ctx, models.FetchOptions{
		MaxIssues:       int(command.Int("max-issues")),
		IncludeComments: true,
	})
	if err != nil {
		spinner.Error(t.GetMessage("fetch.fetch_failed", 0, map[string]interface{}{
			"Repo": repo.String(),
		}))
		return false, err
	}

	if len(result.Issues) == 0 {
		spinner.Warning(t.GetMessage("fetch.no_open_issues", 0, map[string]interface{}{
			"Repo": repo.String(),
		}))
		return true, nil
	}

	spinner.Success(t.GetMessage("fetch.issues_fetched", len(result.Issues), map[string]interface{}{
		"Count": len(result.Issues),
	}))

	if result.Degraded() {
		ui.PrintWarning(t.GetMessage("fetch.comments_degraded", len(result.Degradations), map[string]interface{}{
			"Count": len(result.Degradations),
		}))
	}

	paths, err := f.container.GetDocumentWriter().WriteDocuments(ctx, result, int(command.Int("max-per-file")), issuesDir)
	if err != nil {
		return false, err
	}

	ui.PrintSuccess(os.Stdout, t.GetMessage("fetch.files_written", len(paths), map[string]interface{}{
		"Count": len(paths),
		"Dir":   issuesDir,
	}))

	return false, nil
}

// runSummarizeStage relee los archivos recién escritos desde issuesDir, igual
// que el comando summarize suelto, así ambas entradas comparten el mismo camino.
func (f *PipelineCommandFactory) runSummarizeStage(
	ctx context.Context,
	command *cli.Command,
	t *i18n.Translations,
	repo models.RepositoryRef,
	issuesDir string,
) error {
	service, err := f.container.GetSummaryService(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", t.GetMessage("error.ai_client", 0, nil), err)
	}

	spinner := ui.NewSmartSpinner(t.GetMessage("summarize.generating", 0, map[string]interface{}{
		"Repo": repo.String(),
	}))
	spinner.Start()

	path, err := service.SummarizeRepository(ctx, repo, issuesDir, command.String("summaries-dir"))
	if err != nil {
		spinner.Error(t.GetMessage("summarize.failed", 0, map[string]interface{}{
			"Repo": repo.String(),
		}))
		return err
	}

	spinner.Success(t.GetMessage("summarize.summary_written", 0, map[string]interface{}{
		"Path": path,
	}))
	return nil
}

func applyModelFlags(cfg *config.Config, provider, model string) error {
	if provider != "" {
		ai := config.AI(strings.ToLower(provider))
		if !config.IsSupportedAI(ai) {
			return apperrors.ErrProviderNotSupported.WithContext("provider", provider)
		}
		cfg.AIConfig.ActiveAI = ai
	}

	if model != "" {
		if cfg.AIConfig.Models == nil {
			cfg.AIConfig.Models = make(map[config.AI]config.Model)
		}
		cfg.AIConfig.Models[cfg.AIConfig.ActiveAI] = config.Model(model)
	}

	return nil
}
