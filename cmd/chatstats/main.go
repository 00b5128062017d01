package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

var version = "dev"

func main() {
	fs := afero.NewOsFs()
	cmd := rootCmd(fs)
	cmd.AddCommand(browseCmd(fs))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
