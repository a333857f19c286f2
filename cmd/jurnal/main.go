// Package main is the entry point for the jurnal CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/jurnal/cmd/jurnal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
