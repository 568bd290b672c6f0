package main

import (
	"os"

	"github.com/arthur-debert/kilm/cmd/kilm"
)

func main() {
	os.Exit(kilm.Execute())
}
