// Command cryo loads documents as object graphs and freezes them.
package main

import (
	"os"

	"github.com/IljaManakov/cryostasis/internal/cli"
)

func main() {
	os.Exit(cli.GetExitCode(cli.NewRootCommand().Execute()))
}
