package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeGitHub        ErrorType = "GITHUB"
	TypeNetwork       ErrorType = "NETWORK"
	TypeStorage       ErrorType = "STORAGE"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if body, ok := e.Context["response_body"].(string); ok && body != "" {
			msg += fmt.Sprintf(" - %s", body)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is permite que errors.Is matchee las copias derivadas con su error base
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Set GITHUB_TOKEN in your environment or .env file, or pass --token.\nCreate one at: https://github.com/settings/tokens")

	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "LLM API key is missing", nil).
				WithSuggestion("Set GEMINI_API_KEY or OPENAI_API_KEY in your environment or .env file")

	ErrProviderNotSupported = NewAppError(TypeConfiguration, "LLM provider not supported", nil).
				WithSuggestion("Supported providers: gemini, openai. Set LLM_PROVIDER or pass --provider")

	ErrModelNotSupported = NewAppError(TypeConfiguration, "model not supported for the selected provider", nil).
				WithSuggestion("Run 'issuedigest check-config' to list valid models per provider")

	ErrInvalidRepoRef = NewAppError(TypeConfiguration, "could not parse repository reference", nil).
				WithSuggestion("Use a GitHub URL (https://github.com/owner/repo) or an owner/repo slug")
)

// GitHub errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeGitHub, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen update GITHUB_TOKEN in your .env file")

	ErrGitHubRateLimit = NewAppError(TypeGitHub, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait for the limit to reset or use a personal access token for higher limits")

	ErrRepositoryNotFound = NewAppError(TypeGitHub, "repository not found", nil).
				WithSuggestion("Check the repository URL and your token's access permissions")

	ErrFetchFailed = NewAppError(TypeGitHub, "failed to fetch issues after retries", nil).
			WithSuggestion("Check your network connection and try again")

	ErrCommentsDegraded = NewAppError(TypeGitHub, "some comment threads could not be fetched", nil).
				WithSuggestion("The affected issues were kept without comments. Re-run with --verbose for details")
)

// Network errors
var (
	ErrNetworkTransient = NewAppError(TypeNetwork, "transient network failure", nil)
)

// AI errors
var (
	ErrSummarizationFailed = NewAppError(TypeAI, "summarization request failed", nil).
				WithSuggestion("Try again or check your API key configuration")

	ErrSummaryNotConverging = NewAppError(TypeAI, "hierarchical summarization is not converging", nil).
				WithSuggestion("Summaries are not getting smaller between levels. Try a larger-context model or a bigger token budget")

	ErrQuotaExceeded = NewAppError(TypeAI, "AI quota exceeded or rate limited", nil).
				WithSuggestion("Wait a few minutes and try again, or check your API quota")

	ErrEmptyAIResponse = NewAppError(TypeAI, "the model returned an empty response", nil).
				WithSuggestion("This is likely a temporary issue, please try again")
)

// Storage errors
var (
	ErrNoIssueFiles = NewAppError(TypeStorage, "no issue files found for repository", nil).
			WithSuggestion("Run 'issuedigest fetch-issues <repo>' first, or check --issues-dir")

	ErrWriteDocument = NewAppError(TypeStorage, "failed to write issue document", nil).
				WithSuggestion("Check that the output directory is writable")

	ErrReadDocument = NewAppError(TypeStorage, "failed to read issue document", nil).
				WithSuggestion("Check that the issue files are readable")

	ErrCreateDirectory = NewAppError(TypeStorage, "failed to create output directory", nil).
				WithSuggestion("Check filesystem permissions for the output path")
)
