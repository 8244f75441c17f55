// Package matching provides the keyword tables and the regex scanner
// used to spot governance indicators in file contents, CI check names
// and contributor logins.
package matching

import (
	"regexp"
	"sort"
)

// CLAKeywords match mentions or tooling of Contributor License Agreements.
var CLAKeywords = compile(
	`(?i)contribut(or|ion)s? licens(e|ing) agreement`,
	`\bCLA(s)?\b`, // clear-cut appearance of CLA or CLAs
	`license/cla`, // cla-assistant check context
	`cla-bot`,
)

// DCOKeywords match mentions or tooling of the Developer Certificate of
// Origin.
var DCOKeywords = compile(
	`(?i)developers? certificate of origin`,
	`\bDCO\b`,
	`Signed-off-by`,
)

// InOutboundKeywords match inbound=outbound licensing statements.
var InOutboundKeywords = compile(`(?i)inbound[ ]*=[ ]*outbound`)

// BotKeywords match contributor or author names that belong to bots.
var BotKeywords = compile(`(?i)^renovate`, `(?i)^dependabot`, `(?i)^weblate$`)

// PolicyFilePattern matches README and CONTRIBUTING files in any
// directory, with or without an extension.
var PolicyFilePattern = compile(`(?i)^(|.*/)(readme|contributing)(\.[a-z]+)?$`)

// LicenseFilePattern matches LICENSE/COPYING files and the LICENSES
// directory used by REUSE-compliant projects.
var LicenseFilePattern = compile(`^(LICENSE|License|COPYING)`)

// ExtraPolicyDirs are non-root directories that are also inspected for
// contribution policy files.
var ExtraPolicyDirs = []string{".github"}

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

// FindPatterns returns the fields matched by at least one of the
// patterns, sorted lexicographically. Empty fields are skipped.
func FindPatterns(patterns []*regexp.Regexp, fields ...string) []string {
	var matches []string
	for _, field := range fields {
		if field == "" {
			continue
		}
		for _, pattern := range patterns {
			if pattern.MatchString(field) {
				matches = append(matches, field)
				break
			}
		}
	}
	sort.Strings(matches)
	return matches
}

// IsBot reports whether a contributor login or commit author name looks
// like an automation account.
func IsBot(name string) bool {
	return len(FindPatterns(BotKeywords, name)) > 0
}
