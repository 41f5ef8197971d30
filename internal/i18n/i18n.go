package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle. With an empty localesDir the
// embedded English defaults are loaded and the standard "locales" directory
// is scanned if present; with an explicit dir the files there are mandatory.
func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	if defaultLang == "" {
		return nil, fmt.Errorf("language cannot be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if localesDir == "" {
		bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

		files, err := filepath.Glob(filepath.Join("locales", "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	} else {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no translation files found")
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Fetch GitHub issues and summarize them with an LLM"

	[app_description]
	other = "IssueDigest downloads the open issues of a GitHub repository into markdown files and generates a single LLM-written summary of them."

	[help_command_usage]
	other = "Shows help"

	[fetch.command_usage]
	other = "Fetch open issues from a repository and save them as markdown"

	[fetch.command_description]
	other = "Downloads the open issues (newest first) with their comment threads and writes them as markdown documents, starting a new file every N issues."

	[fetch.output_dir_flag_usage]
	other = "directory where the issue files are written"

	[fetch.max_issues_flag_usage]
	other = "maximum number of issues to fetch (0 = no limit)"

	[fetch.max_per_file_flag_usage]
	other = "maximum number of issues per markdown file"

	[fetch.no_comments_flag_usage]
	other = "skip downloading comment threads"

	[fetch.token_flag_usage]
	other = "GitHub token (overrides GITHUB_TOKEN)"

	[fetch.verbose_flag_usage]
	other = "show progress details"

	[fetch.missing_repo_arg]
	other = "missing repository argument. Usage: issuedigest fetch-issues <repo-url | owner/repo>"

	[fetch.fetching_issues]
	other = "Fetching issues from {{.Repo}}..."

	[fetch.fetch_failed]
	other = "Could not fetch issues from {{.Repo}}"

	[fetch.no_open_issues]
	other = "No open issues found in {{.Repo}}"

	[fetch.issues_fetched]
	one = "Fetched {{.Count}} issue"
	other = "Fetched {{.Count}} issues"

	[fetch.files_written]
	one = "Wrote {{.Count}} file to {{.Dir}}"
	other = "Wrote {{.Count}} files to {{.Dir}}"

	[fetch.comments_degraded]
	one = "{{.Count}} issue kept without comments (thread fetch failed)"
	other = "{{.Count}} issues kept without comments (thread fetch failed)"

	[summarize.command_usage]
	other = "Summarize previously fetched issues with the configured LLM"

	[summarize.command_description]
	other = "Loads the markdown files written by fetch-issues, chunks them under the model's budget and writes a single hierarchical summary."

	[summarize.issues_dir_flag_usage]
	other = "directory where the issue files were saved"

	[summarize.output_dir_flag_usage]
	other = "directory where the summary is written"

	[summarize.provider_flag_usage]
	other = "LLM provider to use (gemini or openai)"

	[summarize.model_flag_usage]
	other = "model name to use for this run"

	[summarize.verbose_flag_usage]
	other = "show progress details"

	[summarize.missing_repo_arg]
	other = "missing repository argument. Usage: issuedigest summarize <owner_repo | owner/repo>"

	[summarize.generating]
	other = "Summarizing issues of {{.Repo}}..."

	[summarize.failed]
	other = "Could not summarize the issues of {{.Repo}}"

	[summarize.summary_written]
	other = "Summary written to {{.Path}}"

	[pipeline.command_usage]
	other = "Fetch issues and summarize them in one run"

	[pipeline.command_description]
	other = "Runs fetch-issues and summarize back to back: the issue files land in --issues-dir and the summary in --summaries-dir."

	[pipeline.issues_dir_flag_usage]
	other = "directory where the issue files are written and then re-read"

	[pipeline.summaries_dir_flag_usage]
	other = "directory where the summary is written"

	[pipeline.missing_repo_arg]
	other = "missing repository argument. Usage: issuedigest fetch-and-summarize <repo-url | owner/repo>"

	[pipeline.fetch_stage]
	other = "Stage 1: fetch issues"

	[pipeline.summarize_stage]
	other = "Stage 2: summarize"

	[check.command_usage]
	other = "Check tokens, API keys and output directories"

	[check.command_description]
	other = "Runs the configuration health checks and reports which commands are ready to use."

	[check.running_checks]
	other = "Checking IssueDigest configuration"

	[check.github_token]
	other = "GitHub token"

	[check.active_provider]
	other = "Active LLM provider"

	[check.api_key]
	other = "LLM API key"

	[check.model]
	other = "Configured model"

	[check.output_dirs]
	other = "Output directories"

	[check.max_per_file]
	other = "Issues per file"

	[check.token_not_set]
	other = "GITHUB_TOKEN is not set"

	[check.token_set_suggestion]
	other = "Set GITHUB_TOKEN in your environment or .env file"

	[check.token_invalid]
	other = "the GitHub API rejected the token"

	[check.token_check_suggestion]
	other = "Generate a new token at https://github.com/settings/tokens"

	[check.api_unreachable]
	other = "could not reach the GitHub API (no network?)"

	[check.authenticated_as]
	other = "authenticated as {{.Login}}"

	[check.provider_not_supported]
	other = "provider '{{.Provider}}' is not supported"

	[check.provider_suggestion]
	other = "Supported providers: {{.Providers}}"

	[check.provider_not_registered]
	other = "provider '{{.Provider}}' is not registered"

	[check.api_key_missing]
	other = "API key for {{.Provider}} is missing"

	[check.api_key_suggestion]
	other = "Set {{.EnvVar}} in your environment or .env file"

	[check.api_key_ok]
	other = "API key for {{.Provider}} is set"

	[check.model_unknown]
	other = "model '{{.Model}}' is not in the known list for {{.Provider}}"

	[check.model_suggestion]
	other = "Known models: {{.Models}}"

	[check.dirs_not_writable]
	other = "cannot write to {{.Dir}}"

	[check.dirs_suggestion]
	other = "Check filesystem permissions or point the flags at another directory"

	[check.max_per_file_invalid]
	other = "MAX_ISSUES_PER_FILE must be positive (got {{.Value}})"

	[check.summary]
	other = "Summary"

	[check.all_good]
	other = "Everything is ready"

	[check.has_warnings]
	other = "Configuration works but has warnings"

	[check.has_errors]
	other = "Configuration has problems"

	[check.available_commands]
	other = "Command availability:"

	[check.command_ready]
	other = "ready"

	[check.command_unavailable]
	other = "needs configuration"

	[completion.command_usage]
	other = "Generate shell completion scripts"

	[completion.command_description]
	other = "Prints the completion script for bash, zsh or fish, or installs it into your shell config."

	[completion.bash_usage]
	other = "print the bash completion script"

	[completion.zsh_usage]
	other = "print the zsh completion script"

	[completion.fish_usage]
	other = "print the fish completion script"

	[completion.install_usage]
	other = "append the completion loader to your shell config"

	[completion.error_home_dir]
	other = "could not resolve the home directory: {{.Error}}"

	[completion.error_unsupported_shell]
	other = "unsupported shell: {{.Shell}}"

	[completion.error_open_config]
	other = "could not open the shell config file: {{.Error}}"

	[completion.error_write_config]
	other = "could not write the shell config file: {{.Error}}"

	[completion.already_installed]
	other = "Completion is already installed in {{.File}}"

	[completion.installed_success]
	other = "Completion installed in {{.File}}"

	[completion.restart_shell]
	other = "Restart your shell or run:"

	[error.ai_client]
	other = "could not create the AI client"

	[error.generating_summary]
	other = "the model failed to generate the summary: {{.Error}}"

	[error.list_issues_page]
	other = "error fetching issues page {{.Page}}"

	[error.get_comments]
	other = "error fetching comments for issue #{{.IssueNumber}}"

	[error.missing_api_key]
	other = "{{.Provider}} API key is not configured"

	[factory_already_registered]
	other = "factory '{{.FactoryName}}' is already registered"

	[ui_error.try_suggestion]
	other = "💡 Try: "
	`
