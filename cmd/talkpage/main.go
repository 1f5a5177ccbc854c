package main

import (
	"os"

	"impractical.co/talkpage/internal/cli"
	"impractical.co/talkpage/internal/logging"
)

// main is the entry point for the talkpage CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
