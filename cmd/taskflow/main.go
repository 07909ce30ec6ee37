package main

import (
	"errors"
	"os"

	"github.com/fatih/color"

	"github.com/sefazor/taskflow-client/cmd/taskflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			color.New(color.FgRed).Fprintln(os.Stderr, "✘ "+err.Error())
		}
		os.Exit(1)
	}
}
