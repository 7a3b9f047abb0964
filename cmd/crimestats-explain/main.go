package main

import (
	"fmt"
	"os"

	"crimestats/internal/platform/config"
	"crimestats/internal/platform/logger"
	"crimestats/internal/services/explain"
)

func main() {
	if _, err := config.LoadDotenv(); err != nil {
		fmt.Fprintln(os.Stderr, "dotenv:", err)
	}
	// keep stdout for tables; logs go to stderr at warn and above
	opt := logger.FromEnv()
	opt.Writer, opt.Level = os.Stderr, "warn"
	logger.Init(opt)

	if err := explain.NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
