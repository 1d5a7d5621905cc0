// CLI entry point for ChemSDS.
package main

import (
	"os"

	"github.com/turtacn/ChemSDS/internal/interfaces/cli"
)

// Build-time variables injected via ldflags, forwarded to the CLI package.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.GitCommit = gitCommit
	cli.BuildDate = buildDate

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
