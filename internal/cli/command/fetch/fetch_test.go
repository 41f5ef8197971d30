package fetch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Tomas-vilte/IssueDigest/internal/config"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/Tomas-vilte/IssueDigest/internal/domain/ports"
	apperrors "github.com/Tomas-vilte/IssueDigest/internal/errors"
	"github.com/Tomas-vilte/IssueDigest/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIssueProvider struct {
	mock.Mock
}

func (m *MockIssueProvider) FetchIssues(ctx context.Context, opts models.FetchOptions) (*models.FetchResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FetchResult), args.Error(1)
}

func (m *MockIssueProvider) Repository() models.RepositoryRef {
	args := m.Called()
	return args.Get(0).(models.RepositoryRef)
}

type MockDocumentWriter struct {
	mock.Mock
}

func (m *MockDocumentWriter) WriteDocuments(ctx context.Context, result *models.FetchResult, maxPerFile int, outputDir string) ([]string, error) {
	args := m.Called(ctx, result, maxPerFile, outputDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// stubProviderSource registra con qué repo y token se pidió el cliente.
type stubProviderSource struct {
	provider ports.IssueProvider
	gotRepo  models.RepositoryRef
	gotToken string
}

func (s *stubProviderSource) GetIssueProvider(repo models.RepositoryRef, token string) ports.IssueProvider {
	s.gotRepo = repo
	s.gotToken = token
	return s.provider
}

func setupFetchTest(t *testing.T) (*MockIssueProvider, *MockDocumentWriter, *stubProviderSource, *i18n.Translations, *config.Config) {
	mockProvider := new(MockIssueProvider)
	mockWriter := new(MockDocumentWriter)
	source := &stubProviderSource{provider: mockProvider}

	cfg := &config.Config{
		MaxPerFile: 50,
		IssuesDir:  "results/issues",
		VCSConfigs: map[string]config.VCSConfig{
			"github": {Token: "env-token"},
		},
	}

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	return mockProvider, mockWriter, source, translations, cfg
}

func fetchResult(repo models.RepositoryRef, issueCount int) *models.FetchResult {
	issues := make([]models.Issue, 0, issueCount)
	for i := 0; i < issueCount; i++ {
		issues = append(issues, models.Issue{
			Number:    i + 1,
			Title:     fmt.Sprintf("issue %d", i+1),
			Author:    "gopher",
			CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		})
	}
	return &models.FetchResult{
		Repository: repo,
		FetchedAt:  time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
		Issues:     issues,
	}
}

func TestFetchCommand(t *testing.T) {
	t.Run("should fetch issues and write documents", func(t *testing.T) {
		// Arrange
		mockProvider, mockWriter, source, translations, cfg := setupFetchTest(t)

		repo := models.RepositoryRef{Owner: "golang", Name: "go"}
		result := fetchResult(repo, 2)

		mockProvider.On("FetchIssues", mock.Anything, models.FetchOptions{
			MaxIssues:       0,
			IncludeComments: true,
		}).Return(result, nil)
		mockWriter.On("WriteDocuments", mock.Anything, result, 50, "results/issues").
			Return([]string{"results/issues/golang_go_issues.md"}, nil)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues", "golang/go"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, repo, source.gotRepo)
		assert.Equal(t, "env-token", source.gotToken)
		mockProvider.AssertExpectations(t)
		mockWriter.AssertExpectations(t)
	})

	t.Run("should honor flag overrides", func(t *testing.T) {
		// Arrange
		mockProvider, mockWriter, source, translations, cfg := setupFetchTest(t)

		repo := models.RepositoryRef{Owner: "golang", Name: "go"}
		result := fetchResult(repo, 10)

		mockProvider.On("FetchIssues", mock.Anything, models.FetchOptions{
			MaxIssues:       10,
			IncludeComments: false,
		}).Return(result, nil)
		mockWriter.On("WriteDocuments", mock.Anything, result, 5, "otro-dir").
			Return([]string{"otro-dir/golang_go_issues_1.md", "otro-dir/golang_go_issues_2.md"}, nil)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{
			"fetch-issues",
			"--token", "flag-token",
			"--max-issues", "10",
			"--max-per-file", "5",
			"--no-comments",
			"--output-dir", "otro-dir",
			"https://github.com/golang/go",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "flag-token", source.gotToken)
		mockProvider.AssertExpectations(t)
		mockWriter.AssertExpectations(t)
	})

	t.Run("should fail when no token is configured", func(t *testing.T) {
		// Arrange
		mockProvider, mockWriter, source, translations, cfg := setupFetchTest(t)
		cfg.VCSConfigs = nil

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues", "golang/go"})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrTokenMissing)
		mockProvider.AssertNotCalled(t, "FetchIssues")
		mockWriter.AssertNotCalled(t, "WriteDocuments")
	})

	t.Run("should fail without a repository argument", func(t *testing.T) {
		// Arrange
		_, mockWriter, source, translations, cfg := setupFetchTest(t)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues"})

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), translations.GetMessage("fetch.missing_repo_arg", 0, nil))
		mockWriter.AssertNotCalled(t, "WriteDocuments")
	})

	t.Run("should fail with an unparseable repository", func(t *testing.T) {
		// Arrange
		_, mockWriter, source, translations, cfg := setupFetchTest(t)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues", "esto no es un repo"})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrInvalidRepoRef)
		mockWriter.AssertNotCalled(t, "WriteDocuments")
	})

	t.Run("should skip writing when there are no open issues", func(t *testing.T) {
		// Arrange
		mockProvider, mockWriter, source, translations, cfg := setupFetchTest(t)

		repo := models.RepositoryRef{Owner: "golang", Name: "go"}
		mockProvider.On("FetchIssues", mock.Anything, mock.Anything).
			Return(fetchResult(repo, 0), nil)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues", "golang/go"})

		// Assert
		assert.NoError(t, err)
		mockProvider.AssertExpectations(t)
		mockWriter.AssertNotCalled(t, "WriteDocuments")
	})

	t.Run("should propagate fetch errors", func(t *testing.T) {
		// Arrange
		mockProvider, mockWriter, source, translations, cfg := setupFetchTest(t)

		mockProvider.On("FetchIssues", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrFetchFailed)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues", "golang/go"})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrFetchFailed)
		mockWriter.AssertNotCalled(t, "WriteDocuments")
	})

	t.Run("should propagate write errors", func(t *testing.T) {
		// Arrange
		mockProvider, mockWriter, source, translations, cfg := setupFetchTest(t)

		repo := models.RepositoryRef{Owner: "golang", Name: "go"}
		mockProvider.On("FetchIssues", mock.Anything, mock.Anything).
			Return(fetchResult(repo, 3), nil)
		mockWriter.On("WriteDocuments", mock.Anything, mock.Anything, 50, "results/issues").
			Return(nil, apperrors.ErrWriteDocument)

		factory := NewFetchCommandFactory(source, mockWriter)
		cmd := factory.CreateCommand(translations, cfg)

		// Act
		err := cmd.Run(context.Background(), []string{"fetch-issues", "golang/go"})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrWriteDocument)
	})
}
