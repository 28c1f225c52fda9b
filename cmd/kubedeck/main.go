// Package main is the entry point for the kubedeck dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/kubedeck/cmd/kubedeck/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
