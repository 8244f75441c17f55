// Package analysis turns the raw observations of a repository report
// into categorized, severity-tagged findings. The evaluation is a pure
// function of the report and the options: it performs no I/O, keeps no
// state between calls and never mutates its input, so independent
// reports can be analyzed concurrently.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ossrfc/ossrfc/internal/domain"
)

// ErrMissingURL signals a report that was never populated with its
// mandatory identifying fields. This is a programming error in the
// caller, not a property of the repository.
var ErrMissingURL = errors.New("repository report has no URL")

// Maintainer dominance above this value means the next ten contributors
// together provide less than a quarter of the top contributor's commits.
const dominanceThreshold = 0.75

// Commit age thresholds in days.
const (
	quietDays = 90
	staleDays = 365
)

// Options carries the per-run configuration of the engine. Disabled
// checks are skipped entirely; ignored flags still produce findings but
// mark them as ignored.
type Options struct {
	Disabled []string
	Ignored  []string
}

func (o Options) disabled(checkID string) bool { return contains(o.Disabled, checkID) }
func (o Options) ignored(flagID string) bool   { return contains(o.Ignored, flagID) }

// Analyze evaluates every enabled rule against the report and returns
// the findings in a fixed order: licensing rules first, contribution
// rules last, evidence order within a rule. Rules whose data could not
// be collected (report.ImpossibleChecks) are skipped like disabled
// ones, so a failed fetch never reads as a property of the repository.
// Calling it twice with the same input yields identical output.
func Analyze(report *domain.RepoReport, opts Options) ([]domain.Finding, error) {
	if report.URL == "" {
		return nil, ErrMissingURL
	}

	rules := []struct {
		checkID  string
		evaluate func(*domain.RepoReport, Options) []domain.Finding
	}{
		{CheckCLAFiles, claFiles},
		{CheckCLAPulls, claPulls},
		{CheckDCOFiles, dcoFiles},
		{CheckDCOPulls, dcoPulls},
		{CheckInboundOutbound, inOutboundFiles},
		{CheckLicenseFile, licenseFile},
		{CheckContributions, contributions},
		{CheckCommitAge, commitAge},
	}

	var findings []domain.Finding
	for _, rule := range rules {
		if opts.disabled(rule.checkID) || contains(report.ImpossibleChecks, rule.checkID) {
			continue
		}
		findings = append(findings, rule.evaluate(report, opts)...)
	}
	return findings, nil
}

func claFiles(report *domain.RepoReport, opts Options) []domain.Finding {
	var findings []domain.Finding
	for _, match := range report.CLAFiles {
		findings = append(findings, domain.Finding{
			Category:  domain.CategoryLicensing,
			Severity:  domain.SeverityRed,
			Ignored:   opts.ignored(FlagCLA),
			Indicator: fmt.Sprintf("A mention of Contributor License Agreements in file %s", match.File),
		})
	}
	return findings
}

func claPulls(report *domain.RepoReport, opts Options) []domain.Finding {
	var findings []domain.Finding
	for _, match := range report.CLAPulls {
		findings = append(findings, domain.Finding{
			Category: domain.CategoryLicensing,
			Severity: domain.SeverityRed,
			Ignored:  opts.ignored(FlagCLA),
			Indicator: fmt.Sprintf(
				"A check for Contributor License Agreements in a %s of pull request %d",
				match.Origin, match.PullRequest),
		})
	}
	return findings
}

func dcoFiles(report *domain.RepoReport, opts Options) []domain.Finding {
	var findings []domain.Finding
	for _, match := range report.DCOFiles {
		findings = append(findings, domain.Finding{
			Category:  domain.CategoryLicensing,
			Severity:  domain.SeverityGreen,
			Ignored:   opts.ignored(FlagDCO),
			Indicator: fmt.Sprintf("A mention of Developer Certificate of Origin in file %s", match.File),
		})
	}
	return findings
}

func dcoPulls(report *domain.RepoReport, opts Options) []domain.Finding {
	var findings []domain.Finding
	for _, match := range report.DCOPulls {
		findings = append(findings, domain.Finding{
			Category: domain.CategoryLicensing,
			Severity: domain.SeverityGreen,
			Ignored:  opts.ignored(FlagDCO),
			Indicator: fmt.Sprintf(
				"A check for Developer Certificate of Origin in a %s of pull request %d",
				match.Origin, match.PullRequest),
		})
	}
	return findings
}

func inOutboundFiles(report *domain.RepoReport, opts Options) []domain.Finding {
	if len(report.InOutboundFiles) == 0 {
		return nil
	}
	files := make([]string, 0, len(report.InOutboundFiles))
	for _, match := range report.InOutboundFiles {
		files = append(files, match.File)
	}
	return []domain.Finding{{
		Category: domain.CategoryLicensing,
		Severity: domain.SeverityGreen,
		Ignored:  opts.ignored(FlagInboundOutbound),
		Indicator: fmt.Sprintf("A mention of inbound=outbound in the following file(s): %s",
			strings.Join(files, ", ")),
	}}
}

func licenseFile(report *domain.RepoReport, opts Options) []domain.Finding {
	if len(report.LicenseFiles) > 0 {
		return nil
	}
	return []domain.Finding{{
		Category:  domain.CategoryLicensing,
		Severity:  domain.SeverityRed,
		Ignored:   opts.ignored(FlagLicenseFile),
		Indicator: "The project does not seem to have a LICENSE or COPYING file",
	}}
}

// contributions emits exactly one of three mutually exclusive findings,
// or none when contributor data was never collected.
func contributions(report *domain.RepoReport, opts Options) []domain.Finding {
	stats := report.Contributions
	if stats == nil {
		return nil
	}

	finding := domain.Finding{
		Category: domain.CategoryContributions,
		Ignored:  opts.ignored(FlagContributions),
	}
	switch {
	case stats.HumanContributors < 2:
		finding.Severity = domain.SeverityRed
		finding.Indicator = "The project only has one contributor"
	case stats.Dominance > dominanceThreshold:
		finding.Severity = domain.SeverityYellow
		finding.Indicator = "The top contributor has contributed more than 75% " +
			"of the contributions of the next 10 contributors"
	default:
		finding.Severity = domain.SeverityGreen
		finding.Indicator = "The project has multiple contributors with an acceptable " +
			"contribution distribution"
	}
	return []domain.Finding{finding}
}

// commitAge is the one rule that can emit two findings: a stale human
// history is red on its own, and continued bot activity on top of it
// adds a yellow note.
func commitAge(report *domain.RepoReport, opts Options) []domain.Finding {
	ignored := opts.ignored(FlagCommitAge)
	human := report.DaysSinceLastHumanCommit
	bot := report.DaysSinceLastBotCommit

	// A missing day count means no human commit exists at all, which is
	// at least as bad as a stale one.
	if human == nil || *human > staleDays {
		findings := []domain.Finding{{
			Category:  domain.CategoryContributions,
			Severity:  domain.SeverityRed,
			Ignored:   ignored,
			Indicator: staleHumanIndicator(human),
		}}
		if bot != nil && *bot <= staleDays {
			findings = append(findings, domain.Finding{
				Category: domain.CategoryContributions,
				Severity: domain.SeverityYellow,
				Ignored:  ignored,
				Indicator: fmt.Sprintf(
					"Human activity has stopped but there have been newer commits "+
						"made by bots (%d days since last bot commit)", *bot),
			})
		}
		return findings
	}

	if *human > quietDays {
		return []domain.Finding{{
			Category: domain.CategoryContributions,
			Severity: domain.SeverityYellow,
			Ignored:  ignored,
			Indicator: fmt.Sprintf(
				"The last commit made by a human is more than 90 days old (%d days)", *human),
		}}
	}
	return []domain.Finding{{
		Category: domain.CategoryContributions,
		Severity: domain.SeverityGreen,
		Ignored:  ignored,
		Indicator: fmt.Sprintf(
			"The last commit made by a human is less than 90 days old (%d days)", *human),
	}}
}

func staleHumanIndicator(human *int) string {
	if human == nil {
		return "No commit made by a human could be found"
	}
	return fmt.Sprintf("The last commit made by a human is more than 1 year old (%d days)", *human)
}
