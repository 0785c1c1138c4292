package main

import (
	"os"

	"github.com/rmoralesp/jobfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
