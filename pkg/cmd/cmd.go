// Package cmd contains the command line applications for the project.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/log"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:           "torrentvault",
		Short:         "Torrent release ingestion service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			if debug {
				configs.GetConfig().Server.Debug = true
				configs.GetConfig().Log.Level = "debug"
			}

			log.Init()

			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode and verbose logging")

	registerServeCommands()
	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
	registerBlobCommands()
	registerIngestCommands()
	registerSweepCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// withManager 初始化存储管理器，执行 fn 后释放.
func withManager(ctx context.Context, fn func(*storage.Manager) error) error {
	mgr, err := storage.New(ctx, configs.GetConfig(), nil)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer func() { _ = mgr.Close() }()

	return fn(mgr)
}
