package pipeline

import (
	"context"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/stretchr/testify/mock"
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

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) SummarizeRepository(ctx context.Context, repo models.RepositoryRef, issuesDir, outputDir string) (string, error) {
	args := m.Called(ctx, repo, issuesDir, outputDir)
	return args.String(0), args.Error(1)
}

func (m *MockSummaryService) SummarizeContents(ctx context.Context, repo models.RepositoryRef, contents []string) (*models.Summary, error) {
	args := m.Called(ctx, repo, contents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Summary), args.Error(1)
}
