// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and opens the archive store before any subcommand runs

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/secdigest/internal/archive"
	"github.com/harper/secdigest/internal/config"
)

var (
	configPath string
	archiveDir string
	outputDir  string
	verbose    bool
	cfg        *config.Config
	store      *archive.Store
)

var rootCmd = &cobra.Command{
	Use:   "secdigest",
	Short: "Daily security article aggregator",
	Long: `
███████╗███████╗ ██████╗██████╗ ██╗ ██████╗ ███████╗███████╗████████╗
██╔════╝██╔════╝██╔════╝██╔══██╗██║██╔════╝ ██╔════╝██╔════╝╚══██╔══╝
███████╗█████╗  ██║     ██║  ██║██║██║  ███╗█████╗  ███████╗   ██║
╚════██║██╔══╝  ██║     ██║  ██║██║██║   ██║██╔══╝  ╚════██║   ██║
███████║███████╗╚██████╗██████╔╝██║╚██████╔╝███████╗███████║   ██║
╚══════╝╚══════╝ ╚═════╝╚═════╝ ╚═╝ ╚═════╝ ╚══════╝╚══════╝   ╚═╝

Collects security advisory links from curated digests and feeds,
keeps a date-partitioned archive, and publishes static pages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		if configPath == "" {
			configPath = config.GetConfigPath()
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if archiveDir != "" {
			cfg.ArchiveDir = archiveDir
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}

		store = archive.New(cfg.GetArchiveDir())
		return nil
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/secdigest/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&archiveDir, "archive-dir", "", "archive directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "directory for index.html and archive.html (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
