package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/ai/registry"
	"github.com/Tomas-vilte/IssueDigest/internal/infrastructure/vcs/github"
	"github.com/Tomas-vilte/IssueDigest/internal/ui"
	"github.com/urfave/cli/v3"
)

// tokenVerifier permite stubear la llamada de red a la API en los tests.
type tokenVerifier func(ctx context.Context, token string) (string, error)

type CheckCommandFactory struct {
	registry    *registry.AIProviderRegistry
	verifyToken tokenVerifier
}

func NewCheckCommandFactory(reg *registry.AIProviderRegistry) *CheckCommandFactory {
	return &CheckCommandFactory{
		registry:    reg,
		verifyToken: github.VerifyToken,
	}
}

func (f *CheckCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "check-config",
		Aliases:     []string{"check"},
		Usage:       t.GetMessage("check.command_usage", 0, nil),
		Description: t.GetMessage("check.command_description", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return f.runHealthCheck(ctx, t, cfg)
		},
	}
}

func (f *CheckCommandFactory) runHealthCheck(ctx context.Context, t *i18n.Translations, cfg *config.Config) error {
	ui.PrintSectionBanner(t.GetMessage("check.running_checks", 0, nil))

	checks := []healthCheck{
		{name: "check.github_token", fn: f.checkGitHubToken},
		{name: "check.active_provider", fn: f.checkActiveProvider},
		{name: "check.api_key", fn: f.checkAPIKey},
		{name: "check.model", fn: f.checkModel},
		{name: "check.output_dirs", fn: f.checkOutputDirs},
		{name: "check.max_per_file", fn: f.checkMaxPerFile},
	}

	var warnings []string
	var errors []string

	for _, check := range checks {
		checkName := t.GetMessage(check.name, 0, nil)
		spinner := ui.NewSmartSpinner(checkName)
		spinner.Start()

		time.Sleep(100 * time.Millisecond)

		result := check.fn(ctx, t, cfg)

		switch result.status {
		case checkStatusOK:
			spinner.Success(checkName)
			if result.message != "" {
				ui.PrintInfo("  " + result.message)
			}
		case checkStatusWarning:
			spinner.Warning(checkName)
			warnings = append(warnings, result.message)
			if result.suggestion != "" {
				ui.PrintInfo("  → " + result.suggestion)
			}
		case checkStatusError:
			spinner.Error(checkName)
			errors = append(errors, result.message)
			if result.suggestion != "" {
				ui.PrintInfo("  → " + result.suggestion)
			}
		}
	}

	fmt.Println()
	ui.PrintSectionBanner(t.GetMessage("check.summary", 0, nil))

	if len(errors) == 0 && len(warnings) == 0 {
		ui.PrintSuccess(os.Stdout, t.GetMessage("check.all_good", 0, nil))
	} else if len(errors) == 0 {
		ui.PrintWarning(t.GetMessage("check.has_warnings", 0, nil))
	} else {
		ui.PrintError(os.Stdout, t.GetMessage("check.has_errors", 0, nil))
	}

	fmt.Println()
	ui.PrintInfo(t.GetMessage("check.available_commands", 0, nil))

	hasToken := cfg.GitHubToken() != ""
	hasAI := f.aiConfigured(cfg)

	f.printCommandStatus("fetch-issues", hasToken, t)
	f.printCommandStatus("summarize", hasAI, t)
	f.printCommandStatus("fetch-and-summarize", hasToken && hasAI, t)

	return nil
}

type healthCheck struct {
	name string
	fn   func(context.Context, *i18n.Translations, *config.Config) checkResult
}

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

func (f *CheckCommandFactory) checkGitHubToken(ctx context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	token := cfg.GitHubToken()
	if token == "" {
		return checkResult{
			status:     checkStatusError,
			message:    t.GetMessage("check.token_not_set", 0, nil),
			suggestion: t.GetMessage("check.token_set_suggestion", 0, nil),
		}
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	login, err := f.verifyToken(verifyCtx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrGitHubTokenInvalid) {
			return checkResult{
				status:     checkStatusError,
				message:    t.GetMessage("check.token_invalid", 0, nil),
				suggestion: t.GetMessage("check.token_check_suggestion", 0, nil),
			}
		}
		return checkResult{
			status:  checkStatusWarning,
			message: t.GetMessage("check.api_unreachable", 0, nil),
		}
	}

	return checkResult{
		status:  checkStatusOK,
		message: t.GetMessage("check.authenticated_as", 0, map[string]interface{}{"Login": login}),
	}
}

func (f *CheckCommandFactory) checkActiveProvider(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	active := cfg.AIConfig.ActiveAI
	if !config.IsSupportedAI(active) {
		return checkResult{
			status: checkStatusError,
			message: t.GetMessage("check.provider_not_supported", 0, map[string]interface{}{
				"Provider": string(active),
			}),
			suggestion: t.GetMessage("check.provider_suggestion", 0, map[string]interface{}{
				"Providers": supportedProviderList(),
			}),
		}
	}

	if !f.registry.IsRegistered(string(active)) {
		return checkResult{
			status: checkStatusError,
			message: t.GetMessage("check.provider_not_registered", 0, map[string]interface{}{
				"Provider": string(active),
			}),
		}
	}

	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s)", active),
	}
}

func (f *CheckCommandFactory) checkAPIKey(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	active := string(cfg.AIConfig.ActiveAI)

	factory, err := f.registry.Get(active)
	if err != nil {
		return checkResult{
			status: checkStatusError,
			message: t.GetMessage("check.provider_not_registered", 0, map[string]interface{}{
				"Provider": active,
			}),
		}
	}

	if err := factory.ValidateConfig(cfg); err != nil {
		return checkResult{
			status: checkStatusError,
			message: t.GetMessage("check.api_key_missing", 0, map[string]interface{}{
				"Provider": active,
			}),
			suggestion: t.GetMessage("check.api_key_suggestion", 0, map[string]interface{}{
				"EnvVar": strings.ToUpper(active) + "_API_KEY",
			}),
		}
	}

	return checkResult{
		status: checkStatusOK,
		message: t.GetMessage("check.api_key_ok", 0, map[string]interface{}{
			"Provider": active,
		}),
	}
}

func (f *CheckCommandFactory) checkModel(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	active := cfg.AIConfig.ActiveAI
	model := cfg.ModelFor(active)

	for _, known := range config.ModelsForAI(active) {
		if model == known {
			return checkResult{
				status:  checkStatusOK,
				message: fmt.Sprintf("(%s/%s)", active, model),
			}
		}
	}

	// Un modelo fuera de la lista no es fatal: el proveedor puede haber
	// publicado modelos nuevos que esta versión todavía no lista.
	return checkResult{
		status: checkStatusWarning,
		message: t.GetMessage("check.model_unknown", 0, map[string]interface{}{
			"Model":    string(model),
			"Provider": string(active),
		}),
		suggestion: t.GetMessage("check.model_suggestion", 0, map[string]interface{}{
			"Models": knownModelList(active),
		}),
	}
}

func (f *CheckCommandFactory) checkOutputDirs(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	for _, dir := range []string{cfg.IssuesDir, cfg.SummariesDir} {
		if err := ensureWritableDir(dir); err != nil {
			return checkResult{
				status: checkStatusError,
				message: t.GetMessage("check.dirs_not_writable", 0, map[string]interface{}{
					"Dir": dir,
				}),
				suggestion: t.GetMessage("check.dirs_suggestion", 0, nil),
			}
		}
	}

	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%s, %s)", cfg.IssuesDir, cfg.SummariesDir),
	}
}

func (f *CheckCommandFactory) checkMaxPerFile(_ context.Context, t *i18n.Translations, cfg *config.Config) checkResult {
	if cfg.MaxPerFile <= 0 {
		return checkResult{
			status: checkStatusError,
			message: t.GetMessage("check.max_per_file_invalid", 0, map[string]interface{}{
				"Value": cfg.MaxPerFile,
			}),
		}
	}

	return checkResult{
		status:  checkStatusOK,
		message: fmt.Sprintf("(%d)", cfg.MaxPerFile),
	}
}

// ensureWritableDir crea el directorio si falta y prueba que se puede escribir
// un archivo adentro. El archivo de prueba se borra enseguida.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	probe, err := os.CreateTemp(dir, ".check-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}

func (f *CheckCommandFactory) aiConfigured(cfg *config.Config) bool {
	factory, err := f.registry.Get(string(cfg.AIConfig.ActiveAI))
	if err != nil {
		return false
	}
	return factory.ValidateConfig(cfg) == nil
}

func (f *CheckCommandFactory) printCommandStatus(command string, available bool, t *i18n.Translations) {
	status := "✗"
	statusMsg := t.GetMessage("check.command_unavailable", 0, nil)
	if available {
		status = "✓"
		statusMsg = t.GetMessage("check.command_ready", 0, nil)
	}

	fmt.Printf("  %s issuedigest %-20s %s\n", status, command, statusMsg)
}

func supportedProviderList() string {
	names := make([]string, 0, len(config.SupportedAIs()))
	for _, ai := range config.SupportedAIs() {
		names = append(names, string(ai))
	}
	return strings.Join(names, ", ")
}

func knownModelList(ai config.AI) string {
	names := make([]string, 0, len(config.ModelsForAI(ai)))
	for _, model := range config.ModelsForAI(ai) {
		names = append(names, string(model))
	}
	return strings.Join(names, ", ")
}
