package main

import (
	"fmt"
	"os"

	"github.com/adikemitra/adike-go/cmd"
	"github.com/adikemitra/adike-go/internal/conf"
	"github.com/adikemitra/adike-go/internal/logging"
)

func main() {
	// Load the configuration
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command execution error: %v\n", err)
		os.Exit(1)
	}
}
