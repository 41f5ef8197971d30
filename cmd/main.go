package main

import (
	"context"
	"log"
	"os"

	"github.com/Tomas-vilte/IssueDigest/internal/cli/command/check"
	"github.com/Tomas-vilte/IssueDigest/internal/cli/command/completion"
	"github.com/Tomas-vilte/IssueDigest/internal/cli/command/fetch"
	"github.com/Tomas-vilte/IssueDigest/internal/cli/command/pipeline"
	"github.com/Tomas-vilte/IssueDigest/internal/cli/command/summarize"
	"github.com/Tomas-vilte/IssueDigest/internal/cli/registry"
	cfg "github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/ai/gemini"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/ai/openai"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/di"
	"github.com/Tomas-vilte/IssueDigest/internal/ui"
	"github.com/Tomas-vilte/IssueDigest/internal/version"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	// El .env es opcional: si no existe seguimos con el entorno del proceso
	_ = godotenv.Load()

	cfgApp, err := cfg.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, err
	}

	container := di.NewContainer(cfgApp, translations)

	if err := container.RegisterAIProvider("gemini", gemini.NewGeminiProviderFactory()); err != nil {
		log.Printf("Warning: no se pudo registrar el proveedor Gemini: %v", err)
	}

	if err := container.RegisterAIProvider("openai", openai.NewOpenAIProviderFactory()); err != nil {
		log.Printf("Warning: no se pudo registrar el proveedor OpenAI: %v", err)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("fetch-issues", fetch.NewFetchCommandFactory(container, container.GetDocumentWriter())); err != nil {
		log.Fatalf("Error al registrar el comando 'fetch-issues': %v", err)
	}

	if err := registerCommand.Register("summarize", summarize.NewSummarizeCommandFactory(container)); err != nil {
		log.Fatalf("Error al registrar el comando 'summarize': %v", err)
	}

	if err := registerCommand.Register("fetch-and-summarize", pipeline.NewPipelineCommandFactory(container)); err != nil {
		log.Fatalf("Error al registrar el comando 'fetch-and-summarize': %v", err)
	}

	if err := registerCommand.Register("check-config", check.NewCheckCommandFactory(container.GetAIRegistry())); err != nil {
		log.Fatalf("Error al registrar el comando 'check-config': %v", err)
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, completion.NewCompletionCommand(translations))

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "issuedigest",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}
