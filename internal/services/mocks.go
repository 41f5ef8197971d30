package services

import (
	"context"

	"github.com/Tomas-vilte/IssueDigest/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type (
	MockSummarizer struct {
		mock.Mock
	}

	MockDocumentLoader struct {
		mock.Mock
	}
)

func (m *MockSummarizer) Summarize(ctx context.Context, req models.SummaryRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockSummarizer) GetModelName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSummarizer) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDocumentLoader) LoadDocuments(ctx context.Context, repo models.RepositoryRef, issuesDir string) ([]string, error) {
	args := m.Called(ctx, repo, issuesDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
