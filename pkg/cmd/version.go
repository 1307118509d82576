package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sunder %s\n", reportBuildVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
