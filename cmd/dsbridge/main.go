// Command dsbridge drives the catalogue/scheduler reconciliation from the
// command line. Every command prints its result as JSON on stdout, logs go to
// stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dsbridge "github.com/Skyrin/go-dsbridge"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, e.UserMessage(err))
		os.Exit(1)
	}
}

// rootCmd returns the dsbridge command with all its subcommands
func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dsbridge",
		Short:         "Keeps the scheduler's workflows in line with the platform's catalogue",
		Version:       dsbridge.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to the config file (default ./dsbridge.yaml if present)")

	root.AddCommand(
		probeCmd(&configPath),
		processesCmd(&configPath),
		previewCmd(&configPath),
		releaseCmd(&configPath),
		startCmd(&configPath),
		instancesCmd(&configPath),
		scheduleCmd(&configPath),
		taskCmd(&configPath),
		upstreamCmd(&configPath),
	)

	return root
}
