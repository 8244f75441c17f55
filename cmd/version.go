package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags "-X github.com/ossrfc/ossrfc/cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of ossrfc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ossrfc " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
