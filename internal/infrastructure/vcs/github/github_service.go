package github

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/Tomas-vilte/IssueDigest/internal/logger"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

var _ ports.IssueProvider = (*GitHubClient)(nil)

const (
	issuesPerPage = 100
	// commentWorkers limita los hilos de comentarios descargados en paralelo.
	commentWorkers = 5
)

type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	ListComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	owner         string
	repo          string
	trans         *i18n.Translations
	token         string
	sleep         sleepFunc
}

func NewGitHubClient(owner, repo, token string, trans *i18n.Translations) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		issuesService: client.Issues,
		owner:         owner,
		repo:          repo,
		trans:         trans,
		token:         token,
		sleep:         sleepContext,
	}
}

func NewGitHubClientWithServices(
	issuesService IssuesService,
	owner string,
	repo string,
	trans *i18n.Translations,
) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
		trans:         trans,
		token:         "",
		sleep:         func(ctx context.Context, d time.Duration) error { return nil },
	}
}

func (ghc *GitHubClient) Repository() models.RepositoryRef {
	return models.RepositoryRef{Owner: ghc.owner, Name: ghc.repo}
}

// FetchIssues descarga los issues abiertos del repositorio página por página.
// Los pull requests se descartan antes de contar contra opts.MaxIssues. Si
// opts.IncludeComments está activo, los hilos de comentarios se descargan en
// paralelo al final; la falla de un hilo individual degrada ese issue pero
// nunca aborta la descarga completa.
func (ghc *GitHubClient) FetchIssues(ctx context.Context, opts models.FetchOptions) (*models.FetchResult, error) {
	listOpts := &github.IssueListByRepoOptions{
		State:     "open",
		Sort:      "created",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: issuesPerPage,
		},
	}

	var allIssues []models.Issue
	page := 1
	for {
		var pageIssues []*github.Issue
		var resp *github.Response

		err := ghc.withRetry(ctx, "list_issues", func() (*github.Response, error) {
			var callErr error
			pageIssues, resp, callErr = ghc.issuesService.ListByRepo(ctx, ghc.owner, ghc.repo, listOpts)
			return resp, callErr
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ghc.trans.GetMessage("error.list_issues_page", 0, map[string]interface{}{
				"Page": page,
			}), err)
		}

		for _, issue := range pageIssues {
			// La API mezcla PRs entre los issues; acá se filtran
			if issue.PullRequestLinks != nil {
				continue
			}
			allIssues = append(allIssues, convertIssue(issue))
		}

		logger.Debug(ctx, "página de issues descargada", "page", page, "issues", len(allIssues))

		if opts.MaxIssues > 0 && len(allIssues) >= opts.MaxIssues {
			allIssues = allIssues[:opts.MaxIssues]
			break
		}

		if resp.NextPage == 0 {
			break
		}
		listOpts.ListOptions.Page = resp.NextPage
		page++
	}

	result := &models.FetchResult{
		Repository: ghc.Repository(),
		FetchedAt:  time.Now().UTC(),
		Issues:     allIssues,
	}

	if opts.IncludeComments && len(allIssues) > 0 {
		result.Degradations = ghc.fetchAllComments(ctx, allIssues)
		for _, d := range result.Degradations {
			logger.Warn(ctx, "hilo de comentarios degradado",
				"issue", d.IssueNumber,
				"reason", d.Reason)
		}
	}

	return result, nil
}

// fetchAllComments descarga los hilos de comentarios con un pool acotado de
// workers. Cada goroutine escribe solo en su propio slot del slice, así que
// el orden original de los issues se conserva sin sincronización extra.
func (ghc *GitHubClient) fetchAllComments(ctx context.Context, issues []models.Issue) []models.CommentDegradation {
	sem := make(chan struct{}, commentWorkers)
	degraded := make([]*models.CommentDegradation, len(issues))

	var wg sync.WaitGroup
	for i := range issues {
		if issues[i].CommentCount == 0 {
			continue
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				degraded[idx] = &models.CommentDegradation{
					IssueNumber: issues[idx].Number,
					Reason:      ctx.Err().Error(),
				}
				return
			}

			comments, err := ghc.fetchComments(ctx, issues[idx].Number)
			if err != nil {
				degraded[idx] = &models.CommentDegradation{
					IssueNumber: issues[idx].Number,
					Reason:      err.Error(),
				}
				return
			}
			issues[idx].Comments = comments
		}(i)
	}
	wg.Wait()

	var result []models.CommentDegradation
	for _, d := range degraded {
		if d != nil {
			result = append(result, *d)
		}
	}
	return result
}

func (ghc *GitHubClient) fetchComments(ctx context.Context, issueNumber int) ([]models.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: issuesPerPage,
		},
	}

	var allComments []models.Comment
	for {
		var comments []*github.IssueComment
		var resp *github.Response

		err := ghc.withRetry(ctx, "list_comments", func() (*github.Response, error) {
			var callErr error
			comments, resp, callErr = ghc.issuesService.ListComments(ctx, ghc.owner, ghc.repo, issueNumber, opts)
			return resp, callErr
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ghc.trans.GetMessage("error.get_comments", 0, map[string]interface{}{
				"IssueNumber": issueNumber,
			}), err)
		}

		for _, comment := range comments {
			allComments = append(allComments, models.Comment{
				Author:    comment.GetUser().GetLogin(),
				CreatedAt: comment.GetCreatedAt().Time,
				Body:      comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return allComments, nil
}

func convertIssue(issue *github.Issue) models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	assignees := make([]string, 0, len(issue.Assignees))
	for _, assignee := range issue.Assignees {
		assignees = append(assignees, assignee.GetLogin())
	}

	return models.Issue{
		Number:       issue.GetNumber(),
		Title:        issue.GetTitle(),
		Author:       issue.GetUser().GetLogin(),
		CreatedAt:    issue.GetCreatedAt().Time,
		UpdatedAt:    issue.GetUpdatedAt().Time,
		Labels:       labels,
		Assignees:    assignees,
		Body:         issue.GetBody(),
		CommentCount: issue.GetComments(),
	}
}
