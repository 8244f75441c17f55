package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ossrfc/ossrfc/internal/analysis"
	"github.com/ossrfc/ossrfc/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchFileInventory(ctx context.Context, owner, name string) (*domain.FileInventory, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileInventory), args.Error(1)
}

func (m *mockFetcher) FetchPullIndicators(ctx context.Context, owner, name string) ([]domain.PullIndicator, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullIndicator), args.Error(1)
}

func (m *mockFetcher) FetchContributors(ctx context.Context, owner, name string) ([]domain.Contributor, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contributor), args.Error(1)
}

func (m *mockFetcher) FetchCommitActivity(ctx context.Context, owner, name string) (*domain.CommitActivity, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitActivity), args.Error(1)
}

func intPtr(v int) *int { return &v }

func testInventory() *domain.FileInventory {
	return &domain.FileInventory{
		Names: []string{"CONTRIBUTING.md", "LICENSE", "README.md", "src"},
		Lines: map[string][]string{
			"README.md": {
				"# Project",
				"",
				"You have to sign a CLA in order to contribute",
			},
			"CONTRIBUTING.md": {
				"All commits must carry a Signed-off-by trailer.",
				"Contributions are accepted under inbound=outbound terms.",
			},
		},
	}
}

func TestChecker_Check(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	fetcher := new(mockFetcher)

	fetcher.On("FetchFileInventory", mock.Anything, "example", "project").
		Return(testInventory(), nil)
	fetcher.On("FetchPullIndicators", mock.Anything, "example", "project").
		Return([]domain.PullIndicator{
			{
				PullRequest: 42,
				Origin:      "status",
				URL:         "https://api.github.com/statuses/abc",
				Fields:      []string{"license/cla", "Contributor License Agreement is signed"},
			},
			{
				PullRequest: 42,
				Origin:      "action",
				URL:         "https://github.com/example/project/runs/7",
				Fields:      []string{"build", "compile and test"},
			},
		}, nil)
	fetcher.On("FetchContributors", mock.Anything, "example", "project").
		Return([]domain.Contributor{
			{Login: "alice", Type: "User", Contributions: 100},
			{Login: "dependabot[bot]", Type: "Bot", Contributions: 90},
			{Login: "bob", Type: "User", Contributions: 60},
			{Login: "carol", Type: "User", Contributions: 40},
		}, nil)
	fetcher.On("FetchCommitActivity", mock.Anything, "example", "project").
		Return(&domain.CommitActivity{DaysSinceHuman: intPtr(1), DaysSinceBot: intPtr(4)}, nil)

	checker := NewChecker(fetcher, logger)
	report, err := checker.Check(ctx, "https://github.com/example/project", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/example/project", report.URL)
	assert.Equal(t, "example/project", report.Shortname)
	assert.Equal(t, []string{"LICENSE"}, report.LicenseFiles)
	assert.Empty(t, report.ImpossibleChecks)

	assert.Equal(t, []domain.FileMatch{
		{File: "README.md", Indicators: []string{"You have to sign a CLA in order to contribute"}},
	}, report.CLAFiles)
	assert.Equal(t, []domain.FileMatch{
		{File: "CONTRIBUTING.md", Indicators: []string{"All commits must carry a Signed-off-by trailer."}},
	}, report.DCOFiles)
	assert.Equal(t, []domain.FileMatch{
		{File: "CONTRIBUTING.md", Indicators: []string{"Contributions are accepted under inbound=outbound terms."}},
	}, report.InOutboundFiles)

	require.Len(t, report.CLAPulls, 1)
	assert.Equal(t, domain.PullMatch{
		PullRequest: 42,
		Origin:      "status",
		URL:         "https://api.github.com/statuses/abc",
		Indicators:  []string{"Contributor License Agreement is signed", "license/cla"},
	}, report.CLAPulls[0])
	assert.Empty(t, report.DCOPulls)

	require.NotNil(t, report.Contributions)
	assert.Equal(t, 3, report.Contributions.HumanContributors)
	assert.InDelta(t, 0.0, report.Contributions.Dominance, 0.001)

	assert.Equal(t, 1, *report.DaysSinceLastHumanCommit)
	assert.Equal(t, 4, *report.DaysSinceLastBotCommit)

	fetcher.AssertExpectations(t)
}

func TestChecker_Check_DegradedFetchesBecomeImpossibleChecks(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	fetcher := new(mockFetcher)

	fetcher.On("FetchFileInventory", mock.Anything, "example", "project").
		Return(testInventory(), nil)
	fetcher.On("FetchPullIndicators", mock.Anything, "example", "project").
		Return(nil, errors.New("github api error"))
	fetcher.On("FetchContributors", mock.Anything, "example", "project").
		Return(nil, errors.New("github api error"))
	fetcher.On("FetchCommitActivity", mock.Anything, "example", "project").
		Return(&domain.CommitActivity{DaysSinceHuman: intPtr(12)}, nil)

	checker := NewChecker(fetcher, logger)
	report, err := checker.Check(ctx, "https://github.com/example/project", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		analysis.CheckCLAPulls,
		analysis.CheckDCOPulls,
		analysis.CheckContributions,
	}, report.ImpossibleChecks)
	assert.Empty(t, report.CLAPulls)
	assert.Nil(t, report.Contributions)
	assert.Equal(t, 12, *report.DaysSinceLastHumanCommit)
	assert.Nil(t, report.DaysSinceLastBotCommit)
}

func TestChecker_Check_FileInventoryFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	fetcher := new(mockFetcher)

	fetcher.On("FetchFileInventory", mock.Anything, "example", "project").
		Return(nil, errors.New("github api error"))
	fetcher.On("FetchPullIndicators", mock.Anything, "example", "project").
		Return([]domain.PullIndicator{}, nil).Maybe()
	fetcher.On("FetchContributors", mock.Anything, "example", "project").
		Return([]domain.Contributor{}, nil).Maybe()
	fetcher.On("FetchCommitActivity", mock.Anything, "example", "project").
		Return(&domain.CommitActivity{}, nil).Maybe()

	checker := NewChecker(fetcher, logger)
	report, err := checker.Check(ctx, "https://github.com/example/project", nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestChecker_Check_DisabledChecksSkipCollection(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	fetcher := new(mockFetcher)

	fetcher.On("FetchFileInventory", mock.Anything, "example", "project").
		Return(testInventory(), nil)

	checker := NewChecker(fetcher, logger)
	report, err := checker.Check(ctx, "https://github.com/example/project", []string{
		analysis.CheckCLAPulls,
		analysis.CheckDCOPulls,
		analysis.CheckContributions,
		analysis.CheckCommitAge,
	})
	require.NoError(t, err)

	assert.Nil(t, report.Contributions)
	assert.Nil(t, report.DaysSinceLastHumanCommit)
	assert.Empty(t, report.CLAPulls)
	fetcher.AssertNotCalled(t, "FetchPullIndicators", mock.Anything, "example", "project")
	fetcher.AssertNotCalled(t, "FetchContributors", mock.Anything, "example", "project")
	fetcher.AssertNotCalled(t, "FetchCommitActivity", mock.Anything, "example", "project")
}

func TestChecker_Check_RejectsNonGitHubHosts(t *testing.T) {
	checker := NewChecker(new(mockFetcher), zap.NewNop().Sugar())
	report, err := checker.Check(context.Background(), "https://gitlab.com/example/project", nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}
