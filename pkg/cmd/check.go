package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <module.sunder>",
	Short: "Validate a module without reporting a success summary.",
	Long: `Runs the same Lex -> Parse -> Order -> Resolve pipeline as compile, but
only reports diagnostics: a clean run produces no output and exits zero,
mirroring the teacher's check command validating without producing a
binary artifact.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := buildContext(cmd)

		if _, err := ctx.CompilePath(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if !ctx.Succeeded() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
