package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/toran/chat"
	"github.com/arthur-debert/toran/internal/dashboard"
)

func newDashboardCmd(a *app) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the terminal dashboard",
		Long: `Open the interactive dashboard with the Inventory, Orders, Analytics,
AI Chatbot and Settings views. Key hints are shown at the bottom; q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			kv, err := a.openKV()
			if err != nil {
				return err
			}

			return dashboard.Run(dashboard.Deps{
				Store:     store,
				Settings:  kv,
				ExportDir: exportDir,
				ChatOptions: []chat.Option{
					chat.WithDelay(a.cfg.ChatDelay),
				},
				Logger: a.logger.Named("dashboard"),
			}, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVarP(&exportDir, "output", "o", ".", "directory CSV exports are written to")
	return cmd
}

// resolvedConfig is the printable form of config.Config
type resolvedConfig struct {
	File      string `yaml:"file"`
	Backend   string `yaml:"backend"`
	Format    string `yaml:"format"`
	LogLevel  string `yaml:"log-level"`
	Verbose   bool   `yaml:"verbose"`
	ChatDelay string `yaml:"chat-delay"`
	Source    string `yaml:"source,omitempty"`
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the settings in effect after flags, TORAN_* environment variables,
the config file and .env have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(resolvedConfig{
				File:      cfg.File,
				Backend:   string(cfg.Backend),
				Format:    cfg.Format,
				LogLevel:  cfg.LogLevel,
				Verbose:   cfg.Verbose,
				ChatDelay: cfg.ChatDelay.String(),
				Source:    cfg.Source,
			}); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			return enc.Close()
		},
	}
}
