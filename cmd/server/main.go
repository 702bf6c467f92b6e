// Package main is the entry point for the rpg-companion server and tools
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-companion/cmd/server/client"
	"github.com/KirkDiggler/rpg-companion/internal/config"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "rpg-companion",
	Short: "RPG companion server",
	Long:  `rpg-companion serves D&D 5e characters, inventory, the item and spell catalog, and dice sessions.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Env files to load before reading the environment (default .env)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(importCatalogCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// loadConfig reads the configuration and installs the default logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))
	return cfg, nil
}
