package usecase

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ShortenRepoURL converts a repository URL to a handy owner/name string.
// Example: https://github.com/dbsystel/foobar.git -> dbsystel/foobar
func ShortenRepoURL(url string) string {
	url = strings.Trim(strings.TrimSpace(url), "/")
	segments := strings.Split(url, "/")
	if len(segments) > 2 {
		segments = segments[len(segments)-2:]
	}
	name := strings.Join(segments, "/")
	return strings.TrimSuffix(name, ".git")
}

// SplitOwnerName extracts the owner and repository name from a
// github.com URL. Other hosts are rejected: all collectors work through
// the GitHub API, so there is nothing this tool could inspect there.
func SplitOwnerName(url string) (string, string, error) {
	if !strings.Contains(url, "github.com") {
		return "", "", fmt.Errorf("repository %s is not hosted on github.com", url)
	}
	parts := strings.SplitN(ShortenRepoURL(url), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot derive owner and name from repository URL %s", url)
	}
	return parts[0], parts[1], nil
}

// ReadRepoList compiles the list of repositories to check. A single URL
// wins over a list file; "-" reads the list from stdin. Empty lines and
// lines starting with # are skipped.
func ReadRepoList(repoURL, repoFile string) ([]string, error) {
	if repoURL != "" {
		return []string{repoURL}, nil
	}

	var reader io.Reader
	if repoFile == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(repoFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open repository list: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var repos []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		repos = append(repos, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read repository list: %w", err)
	}
	return repos, nil
}
