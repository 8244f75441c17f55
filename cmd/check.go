// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ossrfc/ossrfc/internal/analysis"
	"github.com/ossrfc/ossrfc/internal/config"
	"github.com/ossrfc/ossrfc/internal/gateway"
	"github.com/ossrfc/ossrfc/internal/logging"
	"github.com/ossrfc/ossrfc/internal/output"
	"github.com/ossrfc/ossrfc/internal/usecase"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Analyze repositories and report red, yellow and green flags",
	Long: `Collects file, pull request, contributor and commit observations for
each repository, evaluates them, and prints the findings as a text
analysis or as a JSON document.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger, err := logging.New(verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()

		repoURL, _ := cmd.Flags().GetString("repository")
		repoFile, _ := cmd.Flags().GetString("repo-file")
		jsonOut, _ := cmd.Flags().GetBool("json")
		token, _ := cmd.Flags().GetString("token")
		configPath, _ := cmd.Flags().GetString("config")
		disabled, _ := cmd.Flags().GetStringArray("disable")
		ignored, _ := cmd.Flags().GetStringArray("ignore")

		// Merge the optional config file with the flags; flags add to,
		// not replace, the file values.
		var cfg config.Config
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			cfg = *loaded
			disabled = append(cfg.Disable, disabled...)
			ignored = append(cfg.Ignore, ignored...)
		}
		// Flag values have not passed validation yet.
		merged := config.Config{Disable: disabled, Ignore: ignored}
		if err := merged.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		token = cfg.ResolveToken(token)

		repos, err := usecase.ReadRepoList(repoURL, repoFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		checker := usecase.NewChecker(githubGateway, logger)

		opts := analysis.Options{Disabled: disabled, Ignored: ignored}
		doc := output.NewDocument(disabled, ignored)

		// A failing repository is skipped, the rest of the batch
		// continues; the failure still flips the exit code.
		failed := 0
		for _, repo := range repos {
			report, err := checker.Check(ctx, repo, disabled)
			if err != nil {
				logger.Errorf("Skipping %s: %v", repo, err)
				failed++
				continue
			}
			findings, err := analysis.Analyze(report, opts)
			if err != nil {
				logger.Errorf("Skipping %s: %v", repo, err)
				failed++
				continue
			}
			doc.Add(report, findings)
		}

		if jsonOut {
			err = output.WriteJSON(os.Stdout, doc)
		} else {
			err = output.WriteText(os.Stdout, doc.Repositories)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("repository", "r", "", "A single repository URL to check")
	checkCmd.Flags().StringP("repo-file", "f", "", "A file with one repository URL per line, '-' for stdin")
	checkCmd.MarkFlagsOneRequired("repository", "repo-file")
	checkCmd.MarkFlagsMutuallyExclusive("repository", "repo-file")
	checkCmd.Flags().BoolP("json", "j", false, "Print the full report as JSON instead of a text analysis")
	checkCmd.Flags().StringP("token", "t", "", "GitHub token; falls back to the GITHUB_TOKEN environment variable")
	checkCmd.Flags().StringP("config", "c", "", "Path to a yaml config file")
	checkCmd.Flags().StringArrayP("disable", "d", nil, "Disable a check entirely; can be used multiple times")
	checkCmd.Flags().StringArrayP("ignore", "i", nil, "Ignore a flag's findings; can be used multiple times")
}
