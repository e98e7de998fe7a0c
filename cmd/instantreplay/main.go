// Package main is the entry point for the instantreplay tray application.
package main

import (
	"os"

	"github.com/kabuspl/instantreplay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
