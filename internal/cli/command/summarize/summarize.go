package summarize

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/IssueDigest/internal/logger"
	"github.com/Tomas-vilte/IssueDigest/internal/ui"
	"github.com/urfave/cli/v3"
)

// ServiceSource construye el servicio de resumen bajo demanda. Se resuelve
// recién en el action para que los flags --provider/--model ya estén aplicados.
type ServiceSource interface {
	GetSummaryService(ctx context.Context) (ports.SummaryService, error)
}

type SummarizeCommandFactory struct {
	services ServiceSource
}

func NewSummarizeCommandFactory(services ServiceSource) *SummarizeCommandFactory {
	return &SummarizeCommandFactory{
		services: services,
	}
}

func (f *SummarizeCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "summarize",
		Aliases:     []string{"sum"},
		Usage:       t.GetMessage("summarize.command_usage", 0, nil),
		Description: t.GetMessage("summarize.command_description", 0, nil),
		ArgsUsage:   "<owner_repo | owner/repo>",
		Flags:       f.createFlags(cfg, t),
		Action:      f.createAction(cfg, t),
	}
}

func (f *SummarizeCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "issues-dir",
			Aliases: []string{"i"},
			Value:   cfg.IssuesDir,
			Usage:   t.GetMessage("summarize.issues_dir_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Value:   cfg.SummariesDir,
			Usage:   t.GetMessage("summarize.output_dir_flag_usage", 0, nil),
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
			Usage:   t.GetMessage("summarize.verbose_flag_usage", 0, nil),
		},
	}
}

func (f *SummarizeCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		logger.Initialize(os.Getenv("ISSUEDIGEST_DEBUG") != "", command.Bool("verbose"))

		repoArg := command.Args().First()
		if repoArg == "" {
			return fmt.Errorf("%s", t.GetMessage("summarize.missing_repo_arg", 0, nil))
		}

		repo, err := github.ParseRepoKey(repoArg)
		if err != nil {
			return err
		}

		if err := applyModelFlags(cfg, command.String("provider"), command.String("model")); err != nil {
			return err
		}

		service, err := f.services.GetSummaryService(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", t.GetMessage("error.ai_client", 0, nil), err)
		}

		spinner := ui.NewSmartSpinner(t.GetMessage("summarize.generating", 0, map[string]interface{}{
			"Repo": repo.String(),
		}))
		spinner.Start()

		path, err := service.SummarizeRepository(ctx, repo, command.String("issues-dir"), command.String("output-dir"))
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
}

// applyModelFlags pisa el proveedor y el modelo activos con los valores de los
// flags. El modelo se acepta tal cual; la validación dura queda en check-config.
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
