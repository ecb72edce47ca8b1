// Package main is the entry point for the initiative bot
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	envFiles   []string
)

var rootCmd = &cobra.Command{
	Use:   "initbot",
	Short: "Initiative and character sheet bot for Discord",
	Long: `initbot tracks tabletop RPG characters and combat initiative in Discord channels.
Running it without a subcommand starts the bot.`,
	SilenceUsage: true,
	RunE:         runBot,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, ".env files loaded before reading the environment")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(importCmd)
}
