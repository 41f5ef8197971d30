package fetch

import (
	"context"
	"fmt"
	"os"

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

// ProviderSource entrega el cliente de issues para un repositorio puntual.
// El contenedor de DI lo implementa; los tests inyectan un stub.
type ProviderSource interface {
	GetIssueProvider(repo models.RepositoryRef, token string) ports.IssueProvider
}

type FetchCommandFactory struct {
	providers ProviderSource
	writer    ports.DocumentWriter
}

func NewFetchCommandFactory(providers ProviderSource, writer ports.DocumentWriter) *FetchCommandFactory {
	return &FetchCommandFactory{
		providers: providers,
		writer:    writer,
	}
}

func (f *FetchCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "fetch-issues",
		Aliases:     []string{"fetch"},
		Usage:       t.GetMessage("fetch.command_usage", 0, nil),
		Description: t.GetMessage("fetch.command_description", 0, nil),
		ArgsUsage:   "<repo-url | owner/repo>",
		Flags:       f.createFlags(cfg, t),
		Action:      f.createAction(cfg, t),
	}
}

func (f *FetchCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Value:   cfg.IssuesDir,
			Usage:   t.GetMessage("fetch.output_dir_flag_usage", 0, nil),
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
		&cli.BoolFlag{
			Name:  "no-comments",
			Usage: t.GetMessage("fetch.no_comments_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: t.GetMessage("fetch.token_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   t.GetMessage("fetch.verbose_flag_usage", 0, nil),
		},
	}
}

func (f *FetchCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		logger.Initialize(os.Getenv("ISSUEDIGEST_DEBUG") != "", command.Bool("verbose"))

		repoArg := command.Args().First()
		if repoArg == "" {
			return fmt.Errorf("%s", t.GetMessage("fetch.missing_repo_arg", 0, nil))
		}

		repo, err := github.ParseRepoRef(repoArg)
		if err != nil {
			return err
		}

		token := command.String("token")
		if token == "" {
			token = cfg.GitHubToken()
		}
		if token == "" {
			return apperrors.ErrTokenMissing
		}

		provider := f.providers.GetIssueProvider(repo, token)

		spinner := ui.NewSmartSpinner(t.GetMessage("fetch.fetching_issues", 0, map[string]interface{}{
			"Repo": repo.String(),
		}))
		spinner.Start()

		result, err := provider.FetchIssues(ctx, models.FetchOptions{
			MaxIssues:       int(command.Int("max-issues")),
			IncludeComments: !command.Bool("no-comments"),
		})
		if err != nil {
			spinner.Error(t.GetMessage("fetch.fetch_failed", 0, map[string]interface{}{
				"Repo": repo.String(),
			}))
			return err
		}

		if len(result.Issues) == 0 {
			spinner.Warning(t.GetMessage("fetch.no_open_issues", 0, map[string]interface{}{
				"Repo": repo.String(),
			}))
			return nil
		}

		spinner.Success(t.GetMessage("fetch.issues_fetched", len(result.Issues), map[string]interface{}{
			"Count": len(result.Issues),
		}))

		if result.Degraded() {
			ui.PrintWarning(t.GetMessage("fetch.comments_degraded", len(result.Degradations), map[string]interface{}{
				"Count": len(result.Degradations),
			}))
		}

		outputDir := command.String("output-dir")
		paths, err := f.writer.WriteDocuments(ctx, result, int(command.Int("max-per-file")), outputDir)
		if err != nil {
			return err
		}

		ui.PrintSuccess(os.Stdout, t.GetMessage("fetch.files_written", len(paths), map[string]interface{}{
			"Count": len(paths),
			"Dir":   outputDir,
		}))
		for _, path := range paths {
			ui.PrintInfo("  → " + path)
		}

		return nil
	}
}
