// Package domain contains the core data structures shared between the
// collectors, the analysis engine and the output renderers.
package domain

// Severity classifies how risky a finding is. Red is worse than yellow,
// yellow is worse than green.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityYellow Severity = "yellow"
	SeverityGreen  Severity = "green"
)

// Category groups findings by the governance concern they relate to.
type Category string

const (
	CategoryLicensing     Category = "Licensing"
	CategoryContributions Category = "Contributions"
)

// FileMatch records keyword hits inside a single repository file.
// Indicators is non-empty by construction: a FileMatch only exists
// because at least one keyword matched.
type FileMatch struct {
	File       string   `json:"file"`
	Indicators []string `json:"indicators"`
}

// PullMatch records keyword hits in a pull request's CI surface.
// Origin is "action" for check runs and "status" for commit statuses.
type PullMatch struct {
	PullRequest int      `json:"pull_request"`
	Origin      string   `json:"type"`
	URL         string   `json:"url"`
	Indicators  []string `json:"indicators"`
}

// ContributionStats summarizes human commit authorship concentration.
// Dominance is only meaningful when HumanContributors >= 2; it measures
// how far the top contributor exceeds the combined next ten.
type ContributionStats struct {
	HumanContributors int     `json:"human_contributors"`
	Dominance         float64 `json:"maintainer_dominance"`
}

// RepoReport is the aggregate record a repository check produces. It is
// assembled once by the collectors and treated as immutable afterwards;
// the analysis engine only reads it.
//
// Day counts are nil when no matching commit exists. Contributions is
// nil when contributor data was not collected.
type RepoReport struct {
	URL       string `json:"url"`
	Shortname string `json:"shortname"`

	CLAFiles        []FileMatch `json:"cla_files"`
	CLAPulls        []PullMatch `json:"cla_pulls"`
	DCOFiles        []FileMatch `json:"dco_files"`
	DCOPulls        []PullMatch `json:"dco_pulls"`
	InOutboundFiles []FileMatch `json:"inoutbound_files"`
	LicenseFiles    []string    `json:"licensefiles"`

	Contributions            *ContributionStats `json:"contributions"`
	DaysSinceLastHumanCommit *int               `json:"days_since_last_human_commit"`
	DaysSinceLastBotCommit   *int               `json:"days_since_last_bot_commit"`

	// Checks that could not run for this repository, e.g. because it is
	// not hosted on github.com.
	ImpossibleChecks []string `json:"impossible_checks,omitempty"`
}

// Finding is one categorized, severity-tagged observation about a
// repository. Ignored findings are kept for transparency but must not
// influence any downstream pass/fail decision.
type Finding struct {
	Category  Category `json:"category"`
	Severity  Severity `json:"severity"`
	Indicator string   `json:"indicator"`
	Ignored   bool     `json:"ignored"`
}

// Contributor is one entry of a repository's contributor statistics as
// reported by the hosting platform.
type Contributor struct {
	Login         string `json:"login"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

// PullIndicator is one searchable CI entry (check run or commit status)
// attached to a pull request's newest commit. Fields holds the raw text
// snippets the keyword matcher scans.
type PullIndicator struct {
	PullRequest int
	Origin      string
	URL         string
	Fields      []string
}

// FileInventory lists a repository's top-level file names (plus the
// extra paths inspected for contribution policies) and the line content
// of the README/CONTRIBUTING candidates.
type FileInventory struct {
	Names []string
	Lines map[string][]string
}

// CommitActivity holds the age in days of the newest human and newest
// bot commit. Either pointer is nil when no such commit was found.
type CommitActivity struct {
	DaysSinceHuman *int
	DaysSinceBot   *int
}
