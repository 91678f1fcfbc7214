package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/glossarymaker/internal/cli"
	"codeberg.org/snonux/glossarymaker/internal/gui"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.AddCommand(newGUICommand())

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.Initialize(flags)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		cli.Exit(err)
	}
}

func newGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the desktop app",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			gui.Run(cli.LoadConfig())
		},
	}
}
