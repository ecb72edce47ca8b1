package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mhtoin/initbot/internal/state"
	"github.com/mhtoin/initbot/internal/state/factory"
)

var importCmd = &cobra.Command{
	Use:   "import <source> <destination>",
	Short: "Copy characters and rule tables between state stores",
	Long: `Copy every rule table and character from one state store into another,
for example from a JSON directory into SQLite:

  initbot import json:./data sqlite:./initbot.db

Characters that already exist in the destination are overwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := factory.Open(ctx, args[0])
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	dst, err := factory.Open(ctx, args[1])
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer dst.Close()

	res, err := state.Import(ctx, dst, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new and %d updated characters\n", res.Added, res.Updated)
	return nil
}
