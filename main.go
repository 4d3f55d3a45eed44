package main

import (
	"os"

	"github.com/vibe-coding/vibedocs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
