// Package main is the entry point for the germ command line application.
package main

import (
	"fmt"
	"os"

	"github.com/volks73/germ/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
