package main

import (
	"os"

	"github.com/teranos/zappy/cmd/zappy/commands"
	"github.com/teranos/zappy/errors"
	"github.com/teranos/zappy/logger"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		logger.Cleanup()
		os.Exit(1)
	}
	logger.Cleanup()
}
