package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/kilm/cmd/kilm"
	"github.com/arthur-debert/kilm/internal/version"
)

func main() {
	rootCmd := kilm.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "KILM",
		Section: "1",
		Source:  "kilm " + version.Version,
		Manual:  "kilm manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
