// Package gateway provides a gateway to the GitHub API, abstracting
// away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/ossrfc/ossrfc/internal/domain"
	"github.com/ossrfc/ossrfc/internal/matching"
)

// Contributor listings are capped at one API page; that is plenty for
// judging authorship concentration.
const maxContributors = 30

// Commit history scans stop after this many pages even if no bot commit
// was found yet.
const maxCommitPages = 5

// Fetcher defines the behavior of a gateway collecting the raw
// observations a repository report is built from.
type Fetcher interface {
	FetchFileInventory(ctx context.Context, owner, name string) (*domain.FileInventory, error)
	FetchPullIndicators(ctx context.Context, owner, name string) ([]domain.PullIndicator, error)
	FetchContributors(ctx context.Context, owner, name string) ([]domain.Contributor, error)
	FetchCommitActivity(ctx context.Context, owner, name string) (*domain.CommitActivity, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.SugaredLogger
	now           func() time.Time
}

// pullIndicatorsQuery fetches the newest updated pull request together
// with the check runs and commit statuses of its latest commit.
type pullIndicatorsQuery struct {
	Repository struct {
		PullRequests struct {
			Nodes []struct {
				Number  int
				Commits struct {
					Nodes []struct {
						Commit struct {
							StatusCheckRollup struct {
								Contexts struct {
									Nodes []struct {
										Typename string `graphql:"__typename"`
										CheckRun struct {
											Name       string
											Title      string
											Summary    string
											DetailsURL string `graphql:"detailsUrl"`
										} `graphql:"... on CheckRun"`
										StatusContext struct {
											Context     string
											Description string
											TargetURL   string `graphql:"targetUrl"`
										} `graphql:"... on StatusContext"`
									}
								} `graphql:"contexts(first: 100)"`
							}
						}
					}
				} `graphql:"commits(last: 1)"`
			}
		} `graphql:"pullRequests(first: 1, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway creates a gateway whose HTTP client waits out
// secondary rate limits. An empty token means anonymous access with the
// much lower unauthenticated API limits.
func NewGitHubGateway(token string, logger *zap.SugaredLogger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
		}
	} else {
		logger.Warn("No GitHub token set. API limits for unauthorized requests are very low, " +
			"set GITHUB_TOKEN or use --token to lift them.")
	}

	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
		now:           time.Now,
	}, nil
}

// FetchFileInventory lists the repository's root-level files plus the
// extra policy directories, and downloads the line content of every
// README/CONTRIBUTING candidate.
func (g *GitHubGateway) FetchFileInventory(ctx context.Context, owner, name string) (*domain.FileInventory, error) {
	g.logger.Debugf("Listing repository files of %s/%s", owner, name)

	names, err := g.listDir(ctx, owner, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list repository contents: %w", err)
	}
	for _, dir := range matching.ExtraPolicyDirs {
		extra, err := g.listDir(ctx, owner, name, dir)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s contents: %w", dir, err)
		}
		names = append(names, extra...)
	}

	inventory := &domain.FileInventory{
		Names: names,
		Lines: make(map[string][]string),
	}
	for _, path := range matching.FindPatterns(matching.PolicyFilePattern, names...) {
		lines, err := g.fileLines(ctx, owner, name, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", path, err)
		}
		inventory.Lines[path] = lines
	}
	return inventory, nil
}

func (g *GitHubGateway) listDir(ctx context.Context, owner, name, dir string) ([]string, error) {
	_, entries, _, err := g.restClient.Repositories.GetContents(ctx, owner, name, dir, nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		path := entry.GetName()
		if dir != "" {
			path = dir + "/" + path
		}
		names = append(names, path)
	}
	return names, nil
}

func (g *GitHubGateway) fileLines(ctx context.Context, owner, name, path string) ([]string, error) {
	file, _, _, err := g.restClient.Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		return nil, err
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, err
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n"), nil
}

// FetchPullIndicators returns the searchable CI entries of the most
// recently updated pull request. An empty result means the repository
// has no pull requests or its newest one carries no checks.
func (g *GitHubGateway) FetchPullIndicators(ctx context.Context, owner, name string) ([]domain.PullIndicator, error) {
	g.logger.Debugf("Fetching pull request checks of %s/%s", owner, name)

	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	var q pullIndicatorsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for pull request checks: %w", err)
	}

	var indicators []domain.PullIndicator
	for _, pull := range q.Repository.PullRequests.Nodes {
		for _, commit := range pull.Commits.Nodes {
			for _, node := range commit.Commit.StatusCheckRollup.Contexts.Nodes {
				switch node.Typename {
				case "CheckRun":
					indicators = append(indicators, domain.PullIndicator{
						PullRequest: pull.Number,
						Origin:      "action",
						URL:         node.CheckRun.DetailsURL,
						Fields:      []string{node.CheckRun.Name, node.CheckRun.Title, node.CheckRun.Summary},
					})
				case "StatusContext":
					indicators = append(indicators, domain.PullIndicator{
						PullRequest: pull.Number,
						Origin:      "status",
						URL:         node.StatusContext.TargetURL,
						Fields:      []string{node.StatusContext.Context, node.StatusContext.Description},
					})
				}
			}
		}
	}
	return indicators, nil
}

// FetchContributors returns up to one page of contributors ordered by
// contribution count, as the API delivers them.
func (g *GitHubGateway) FetchContributors(ctx context.Context, owner, name string) ([]domain.Contributor, error) {
	g.logger.Debugf("Fetching contributor stats of %s/%s", owner, name)

	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: maxContributors},
	}
	result, _, err := g.restClient.Repositories.ListContributors(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	contributors := make([]domain.Contributor, 0, len(result))
	for _, c := range result {
		contributors = append(contributors, domain.Contributor{
			Login:         c.GetLogin(),
			Type:          c.GetType(),
			Contributions: c.GetContributions(),
		})
	}
	return contributors, nil
}

// FetchCommitActivity scans the newest commits for the most recent
// human and bot authored ones and returns their ages in days. The scan
// is bounded, so a very active bot can hide older human commits; those
// repositories report no human activity, which is the conservative
// outcome.
func (g *GitHubGateway) FetchCommitActivity(ctx context.Context, owner, name string) (*domain.CommitActivity, error) {
	g.logger.Debugf("Fetching commit activity of %s/%s", owner, name)

	activity := &domain.CommitActivity{}
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for page := 0; page < maxCommitPages; page++ {
		commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits: %w", err)
		}
		for _, commit := range commits {
			date := commit.GetCommit().GetAuthor().GetDate().Time
			if date.IsZero() {
				continue
			}
			if isBotCommit(commit) {
				if activity.DaysSinceBot == nil {
					activity.DaysSinceBot = g.daysSince(date)
				}
			} else if activity.DaysSinceHuman == nil {
				activity.DaysSinceHuman = g.daysSince(date)
			}
			if activity.DaysSinceHuman != nil && activity.DaysSinceBot != nil {
				return activity, nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Debug("  Fetching next page of commits...")
	}
	return activity, nil
}

func (g *GitHubGateway) daysSince(date time.Time) *int {
	days := int(g.now().Sub(date).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

func isBotCommit(commit *github.RepositoryCommit) bool {
	if commit.GetAuthor().GetType() == "Bot" {
		return true
	}
	if matching.IsBot(commit.GetAuthor().GetLogin()) {
		return true
	}
	return matching.IsBot(commit.GetCommit().GetAuthor().GetName())
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
