// Package output renders repository reports as JSON or as a colored
// text analysis.
package output

import (
	"github.com/ossrfc/ossrfc/internal/domain"
)

// JSONVersion of the document envelope, bumped on breaking changes.
const JSONVersion = "1.0"

// RepoResult pairs a repository report with the findings the analysis
// engine derived from it.
type RepoResult struct {
	domain.RepoReport
	Analysis []domain.Finding `json:"analysis"`
}

// Document is the envelope around all checked repositories, carrying
// the configuration the run was performed with for traceability.
type Document struct {
	JSONVersion    string       `json:"json_version"`
	DisabledChecks []string     `json:"disabled_checks"`
	IgnoredFlags   []string     `json:"ignored_flags"`
	Repositories   []RepoResult `json:"repositories"`
}

// NewDocument creates an empty document for the given run configuration.
func NewDocument(disabled, ignored []string) *Document {
	if disabled == nil {
		disabled = []string{}
	}
	if ignored == nil {
		ignored = []string{}
	}
	return &Document{
		JSONVersion:    JSONVersion,
		DisabledChecks: disabled,
		IgnoredFlags:   ignored,
		Repositories:   []RepoResult{},
	}
}

// Add appends one repository's report and findings to the document.
// Empty evidence lists are rendered as [] rather than null, so the
// local copy of the report is normalized here.
func (d *Document) Add(report *domain.RepoReport, findings []domain.Finding) {
	result := RepoResult{
		RepoReport: *report,
		Analysis:   findings,
	}
	if result.CLAFiles == nil {
		result.CLAFiles = []domain.FileMatch{}
	}
	if result.CLAPulls == nil {
		result.CLAPulls = []domain.PullMatch{}
	}
	if result.DCOFiles == nil {
		result.DCOFiles = []domain.FileMatch{}
	}
	if result.DCOPulls == nil {
		result.DCOPulls = []domain.PullMatch{}
	}
	if result.InOutboundFiles == nil {
		result.InOutboundFiles = []domain.FileMatch{}
	}
	if result.LicenseFiles == nil {
		result.LicenseFiles = []string{}
	}
	if result.Analysis == nil {
		result.Analysis = []domain.Finding{}
	}
	d.Repositories = append(d.Repositories, result)
}
