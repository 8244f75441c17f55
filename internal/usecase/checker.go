// Package usecase contains the business logic of the repository checks.
package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ossrfc/ossrfc/internal/analysis"
	"github.com/ossrfc/ossrfc/internal/domain"
	"github.com/ossrfc/ossrfc/internal/gateway"
	"github.com/ossrfc/ossrfc/internal/matching"
)

// Checker collects the raw observations for one repository and builds
// the immutable report the analysis engine consumes.
type Checker struct {
	fetcher gateway.Fetcher
	logger  *zap.SugaredLogger
}

// NewChecker creates a new Checker instance.
func NewChecker(fetcher gateway.Fetcher, logger *zap.SugaredLogger) *Checker {
	return &Checker{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Check fetches all required data concurrently and assembles the
// repository report. Checks listed in disabled are not collected for.
//
// Failures of the pull request, contributor and commit fetches degrade
// the report instead of failing it: the affected checks are recorded as
// impossible and their evidence stays empty. Only a failure to read the
// repository's file listing aborts the check, because no rule can run
// without it.
func (c *Checker) Check(ctx context.Context, repoURL string, disabled []string) (*domain.RepoReport, error) {
	shortname := ShortenRepoURL(repoURL)
	owner, name, err := SplitOwnerName(repoURL)
	if err != nil {
		return nil, err
	}

	c.logger.Infof("Checking repository %s", repoURL)

	skip := func(checkIDs ...string) bool {
		for _, id := range checkIDs {
			if !contains(disabled, id) {
				return false
			}
		}
		return true
	}

	var (
		inventory    *domain.FileInventory
		indicators   []domain.PullIndicator
		contributors []domain.Contributor
		activity     *domain.CommitActivity
		impossible   []string
	)

	eg, egCtx := errgroup.WithContext(ctx)

	needFiles := !skip(analysis.CheckCLAFiles, analysis.CheckDCOFiles,
		analysis.CheckInboundOutbound, analysis.CheckLicenseFile)
	if needFiles {
		eg.Go(func() error {
			var err error
			inventory, err = c.fetcher.FetchFileInventory(egCtx, owner, name)
			return err
		})
	}

	var pullsImpossible, contribImpossible, activityImpossible bool
	if !skip(analysis.CheckCLAPulls, analysis.CheckDCOPulls) {
		eg.Go(func() error {
			var err error
			indicators, err = c.fetcher.FetchPullIndicators(egCtx, owner, name)
			if err != nil {
				c.logger.Warnf("Could not inspect pull request checks: %v", err)
				pullsImpossible = true
			}
			return nil
		})
	}
	if !skip(analysis.CheckContributions) {
		eg.Go(func() error {
			var err error
			contributors, err = c.fetcher.FetchContributors(egCtx, owner, name)
			if err != nil {
				c.logger.Warnf("Could not fetch contributor stats: %v", err)
				contribImpossible = true
			}
			return nil
		})
	}
	if !skip(analysis.CheckCommitAge) {
		eg.Go(func() error {
			var err error
			activity, err = c.fetcher.FetchCommitActivity(egCtx, owner, name)
			if err != nil {
				c.logger.Warnf("Could not fetch commit activity: %v", err)
				activityImpossible = true
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if pullsImpossible {
		impossible = append(impossible, analysis.CheckCLAPulls, analysis.CheckDCOPulls)
		indicators = nil
	}
	if contribImpossible {
		impossible = append(impossible, analysis.CheckContributions)
		contributors = nil
	}
	if activityImpossible {
		impossible = append(impossible, analysis.CheckCommitAge)
		activity = nil
	}

	report := &domain.RepoReport{
		URL:              repoURL,
		Shortname:        shortname,
		ImpossibleChecks: impossible,
	}

	if inventory != nil {
		report.LicenseFiles = matching.FindPatterns(matching.LicenseFilePattern, inventory.Names...)
		c.matchPolicyFiles(report, inventory)
	}
	c.matchPullIndicators(report, indicators)

	if contributors != nil {
		report.Contributions = contributionStats(contributors, c.logger)
	}
	if activity != nil {
		report.DaysSinceLastHumanCommit = activity.DaysSinceHuman
		report.DaysSinceLastBotCommit = activity.DaysSinceBot
	}

	return report, nil
}

// matchPolicyFiles scans every README/CONTRIBUTING candidate for CLA,
// DCO and inbound=outbound keywords. Files are visited in sorted order
// so the evidence lists are deterministic.
func (c *Checker) matchPolicyFiles(report *domain.RepoReport, inventory *domain.FileInventory) {
	for _, file := range matching.FindPatterns(matching.PolicyFilePattern, inventory.Names...) {
		lines, ok := inventory.Lines[file]
		if !ok {
			continue
		}
		if hits := matching.FindPatterns(matching.CLAKeywords, lines...); len(hits) > 0 {
			report.CLAFiles = append(report.CLAFiles, domain.FileMatch{File: file, Indicators: hits})
		}
		if hits := matching.FindPatterns(matching.DCOKeywords, lines...); len(hits) > 0 {
			report.DCOFiles = append(report.DCOFiles, domain.FileMatch{File: file, Indicators: hits})
		}
		if hits := matching.FindPatterns(matching.InOutboundKeywords, lines...); len(hits) > 0 {
			report.InOutboundFiles = append(report.InOutboundFiles, domain.FileMatch{File: file, Indicators: hits})
		}
	}
}

func (c *Checker) matchPullIndicators(report *domain.RepoReport, indicators []domain.PullIndicator) {
	for _, indicator := range indicators {
		if hits := matching.FindPatterns(matching.CLAKeywords, indicator.Fields...); len(hits) > 0 {
			report.CLAPulls = append(report.CLAPulls, domain.PullMatch{
				PullRequest: indicator.PullRequest,
				Origin:      indicator.Origin,
				URL:         indicator.URL,
				Indicators:  hits,
			})
		}
		if hits := matching.FindPatterns(matching.DCOKeywords, indicator.Fields...); len(hits) > 0 {
			report.DCOPulls = append(report.DCOPulls, domain.PullMatch{
				PullRequest: indicator.PullRequest,
				Origin:      indicator.Origin,
				URL:         indicator.URL,
				Indicators:  hits,
			})
		}
	}
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
