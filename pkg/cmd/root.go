// Package cmd implements the sunder CLI: a cobra command tree mirroring
// the teacher's pkg/cmd/root.go (root command, persistent flags, a
// GetFlag/GetString helper pair) adapted from go-corset's constraint-
// compiler surface to the Sunder front/middle-end's
// compile/check/version subcommands.
package cmd

import (
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ashn-dot-dev/sunder/pkg/compiler"
	"github.com/ashn-dot-dev/sunder/pkg/diag"
)

// Version is filled in when building via `make`, but not when installed
// via `go install`.
var Version string

var rootCmd = &cobra.Command{
	Use:   "sunder",
	Short: "A compiler front/middle-end for the Sunder language.",
	Long:  "Lexes, parses, orders, and resolves Sunder source modules.",
}

// Execute runs rootCmd (subcommands attach themselves to it in their own
// init functions) and exits with status 1 on error. Called once by
// cmd/sunder/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("target", "", "target architecture: amd64, arm64, or wasm32 (default: $SUNDER_ARCH, else amd64)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// buildContext constructs a compiler.Context from the process-wide
// --target/--verbose flags, toggling logrus's debug level exactly as the
// teacher's compile command does (pkg/cmd/compile.go).
func buildContext(cmd *cobra.Command) *compiler.Context {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg := compiler.Config{
		Target:  compiler.ArchFromEnv(GetString(cmd, "target")),
		Verbose: GetFlag(cmd, "verbose"),
	}

	log.Debugf("target architecture: %s", cfg.Target)

	return compiler.NewContext(cfg, diag.New(os.Stderr))
}

func reportBuildVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}

	return "(unknown version)"
}
