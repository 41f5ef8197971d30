package regex

import "regexp"

var (
	// Repo reference patterns
	SSHRepo   = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	HTTPSRepo = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	RepoSlug  = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)$`)

	// Document file patterns
	IssueFileIndex = regexp.MustCompile(`_issues_(\d+)\.md$`)

	// Markdown cleanup
	ExcessNewlines = regexp.MustCompile(`\n{3,}`)
)
