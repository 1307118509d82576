// Command sunder is the CLI entry point for the Sunder front/middle-end
// compiler core.
package main

import (
	"github.com/ashn-dot-dev/sunder/pkg/cmd"
)

func main() {
	cmd.Execute()
}
