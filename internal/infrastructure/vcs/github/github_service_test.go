package github

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(issues *MockIssuesService) *GitHubClient {
	trans, _ := i18n.NewTranslations("en", "")
	return NewGitHubClientWithServices(issues, "test-owner", "test-repo", trans)
}

// sleepRecorder reemplaza el reloj real para observar las esperas sin dormir.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waits = append(s.waits, d)
	return nil
}

func ghIssue(number int, title string, commentCount int) *github.Issue {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &github.Issue{
		Number:    github.Ptr(number),
		Title:     github.Ptr(title),
		User:      &github.User{Login: github.Ptr("someone")},
		Comments:  github.Ptr(commentCount),
		CreatedAt: &github.Timestamp{Time: created},
		UpdatedAt: &github.Timestamp{Time: created.Add(time.Hour)},
		Body:      github.Ptr("body of " + title),
	}
}

func ghPullRequest(number int) *github.Issue {
	issue := ghIssue(number, "a pull request", 0)
	issue.PullRequestLinks = &github.PullRequestLinks{}
	return issue
}

func okResponse(nextPage int) *github.Response {
	return &github.Response{
		Response: &http.Response{StatusCode: http.StatusOK},
		NextPage: nextPage,
	}
}

func errResponse(status int) *github.Response {
	return &github.Response{
		Response: &http.Response{StatusCode: status},
	}
}

func TestGitHubClient_FetchIssues(t *testing.T) {
	t.Run("should fetch a single page of issues", func(t *testing.T) {
		// Arrange
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		issue := ghIssue(42, "bug: crash on start", 0)
		issue.Labels = []*github.Label{{Name: github.Ptr("bug")}, {Name: github.Ptr("crash")}}
		issue.Assignees = []*github.User{{Login: github.Ptr("maintainer")}}

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{issue}, okResponse(0), nil).Once()

		// Act
		result, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		got := result.Issues[0]
		assert.Equal(t, 42, got.Number)
		assert.Equal(t, "bug: crash on start", got.Title)
		assert.Equal(t, "someone", got.Author)
		assert.Equal(t, []string{"bug", "crash"}, got.Labels)
		assert.Equal(t, []string{"maintainer"}, got.Assignees)
		assert.Equal(t, "test-owner", result.Repository.Owner)
		assert.False(t, result.Degraded())
		mockIssues.AssertExpectations(t)
	})

	t.Run("should paginate until there are no more pages", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{ghIssue(3, "third", 0), ghIssue(2, "second", 0)}, okResponse(2), nil).Once()
		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{ghIssue(1, "first", 0)}, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		require.NoError(t, err)
		require.Len(t, result.Issues, 3)
		assert.Equal(t, []int{3, 2, 1}, []int{
			result.Issues[0].Number,
			result.Issues[1].Number,
			result.Issues[2].Number,
		})
		mockIssues.AssertExpectations(t)
	})

	t.Run("should filter out pull requests before counting", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		page := []*github.Issue{
			ghIssue(5, "real issue", 0),
			ghPullRequest(4),
			ghIssue(3, "another issue", 0),
			ghPullRequest(2),
		}
		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(page, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{MaxIssues: 2})

		require.NoError(t, err)
		// Los dos PRs no cuentan contra el límite
		require.Len(t, result.Issues, 2)
		assert.Equal(t, 5, result.Issues[0].Number)
		assert.Equal(t, 3, result.Issues[1].Number)
	})

	t.Run("should truncate to max issues without fetching extra pages", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		page := []*github.Issue{
			ghIssue(10, "one", 0),
			ghIssue(9, "two", 0),
			ghIssue(8, "three", 0),
		}
		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(page, okResponse(2), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{MaxIssues: 2})

		require.NoError(t, err)
		require.Len(t, result.Issues, 2)
		assert.Equal(t, 10, result.Issues[0].Number)
		assert.Equal(t, 9, result.Issues[1].Number)
		// Nunca se pide la página siguiente
		mockIssues.AssertNumberOfCalls(t, "ListByRepo", 1)
	})

	t.Run("should retry transient errors and then succeed", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)
		rec := &sleepRecorder{}
		client.sleep = rec.sleep

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, errResponse(http.StatusInternalServerError), errors.New("boom")).Twice()
		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{ghIssue(1, "recovered", 0)}, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		require.Len(t, rec.waits, 2)
		assert.Equal(t, 4*time.Second, rec.waits[0])
		assert.Equal(t, 8*time.Second, rec.waits[1])
		mockIssues.AssertNumberOfCalls(t, "ListByRepo", 3)
	})

	t.Run("should fail after exhausting retries", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)
		rec := &sleepRecorder{}
		client.sleep = rec.sleep

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, errResponse(http.StatusBadGateway), errors.New("bad gateway")).Times(3)

		_, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrFetchFailed))
		assert.Len(t, rec.waits, 2)
		mockIssues.AssertNumberOfCalls(t, "ListByRepo", 3)
	})

	t.Run("should not retry authentication errors", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)
		rec := &sleepRecorder{}
		client.sleep = rec.sleep

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, errResponse(http.StatusUnauthorized), errors.New("bad credentials")).Once()

		_, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrGitHubTokenInvalid))
		assert.Empty(t, rec.waits)
		mockIssues.AssertNumberOfCalls(t, "ListByRepo", 1)
	})

	t.Run("should map missing repository to a not found error", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, errResponse(http.StatusNotFound), errors.New("not found")).Once()

		_, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrRepositoryNotFound))
	})

	t.Run("should wait for the rate limit reset without burning retries", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)
		rec := &sleepRecorder{}
		client.sleep = rec.sleep

		rateErr := &github.RateLimitError{
			Rate: github.Rate{
				Remaining: 0,
				Reset:     github.Timestamp{Time: time.Now().Add(30 * time.Second)},
			},
		}
		// Más señales de cuota que el presupuesto de reintentos transitorios
		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, errResponse(http.StatusForbidden), rateErr).Times(4)
		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{ghIssue(7, "after the wait", 0)}, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{})

		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		require.Len(t, rec.waits, 4)
		// Espera hasta el reset más un segundo de margen
		assert.Greater(t, rec.waits[0], 25*time.Second)
		mockIssues.AssertNumberOfCalls(t, "ListByRepo", 5)
	})
}

func TestGitHubClient_FetchIssuesWithComments(t *testing.T) {
	t.Run("should attach comment threads preserving issue order", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{
				ghIssue(2, "with comments", 2),
				ghIssue(1, "without comments", 0),
			}, okResponse(0), nil).Once()

		comments := []*github.IssueComment{
			{
				User:      &github.User{Login: github.Ptr("alice")},
				Body:      github.Ptr("first comment"),
				CreatedAt: &github.Timestamp{Time: time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)},
			},
			{
				User:      &github.User{Login: github.Ptr("bob")},
				Body:      github.Ptr("second comment"),
				CreatedAt: &github.Timestamp{Time: time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)},
			},
		}
		mockIssues.On("ListComments", mock.Anything, "test-owner", "test-repo", 2, mock.Anything).
			Return(comments, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{IncludeComments: true})

		require.NoError(t, err)
		require.Len(t, result.Issues, 2)
		assert.Equal(t, 2, result.Issues[0].Number)
		require.Len(t, result.Issues[0].Comments, 2)
		assert.Equal(t, "alice", result.Issues[0].Comments[0].Author)
		assert.Equal(t, "bob", result.Issues[0].Comments[1].Author)
		assert.Empty(t, result.Issues[1].Comments)
		assert.False(t, result.Degraded())
		// El issue sin comentarios nunca dispara la llamada
		mockIssues.AssertNumberOfCalls(t, "ListComments", 1)
	})

	t.Run("should keep the issue when its comment thread fails", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{
				ghIssue(9, "degraded issue", 3),
				ghIssue(8, "healthy issue", 1),
			}, okResponse(0), nil).Once()

		mockIssues.On("ListComments", mock.Anything, "test-owner", "test-repo", 9, mock.Anything).
			Return(nil, errResponse(http.StatusInternalServerError), errors.New("boom")).Times(3)
		mockIssues.On("ListComments", mock.Anything, "test-owner", "test-repo", 8, mock.Anything).
			Return([]*github.IssueComment{
				{User: &github.User{Login: github.Ptr("carol")}, Body: github.Ptr("ok")},
			}, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{IncludeComments: true})

		require.NoError(t, err)
		require.Len(t, result.Issues, 2)
		assert.Empty(t, result.Issues[0].Comments)
		require.Len(t, result.Issues[1].Comments, 1)
		require.True(t, result.Degraded())
		require.Len(t, result.Degradations, 1)
		assert.Equal(t, 9, result.Degradations[0].IssueNumber)
	})

	t.Run("should paginate long comment threads", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(mockIssues)

		mockIssues.On("ListByRepo", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.Issue{ghIssue(1, "long thread", 130)}, okResponse(0), nil).Once()

		firstPage := make([]*github.IssueComment, 0, 100)
		for i := 0; i < 100; i++ {
			firstPage = append(firstPage, &github.IssueComment{
				User: &github.User{Login: github.Ptr("bulk")},
				Body: github.Ptr("comment"),
			})
		}
		secondPage := []*github.IssueComment{
			{User: &github.User{Login: github.Ptr("last")}, Body: github.Ptr("the end")},
		}

		mockIssues.On("ListComments", mock.Anything, "test-owner", "test-repo", 1, mock.Anything).
			Return(firstPage, okResponse(2), nil).Once()
		mockIssues.On("ListComments", mock.Anything, "test-owner", "test-repo", 1, mock.Anything).
			Return(secondPage, okResponse(0), nil).Once()

		result, err := client.FetchIssues(context.Background(), models.FetchOptions{IncludeComments: true})

		require.NoError(t, err)
		require.Len(t, result.Issues[0].Comments, 101)
		assert.Equal(t, "last", result.Issues[0].Comments[100].Author)
	})
}
