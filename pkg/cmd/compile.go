package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <module.sunder>",
	Short: "Run the front/middle-end pipeline over a module and its imports.",
	Long: `Lexes, parses, orders, and resolves the named module and every module it
transitively imports, reporting success or failure. This is a
textual-emitter-free slice of the full driver's compile command: no C/NASM
code is emitted.`,
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

		fmt.Printf("compiled %d module(s) for %s\n", len(ctx.Modules), ctx.Config.Target)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
