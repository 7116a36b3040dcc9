package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
)

var (
	sweepDryRun bool

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "remove stored torrent files that have no torrent row",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *configs.GetConfig()
			if cmd.Flags().Changed("dry-run") {
				cfg.Sweep.DryRun = sweepDryRun
			}

			return withManager(cmd.Context(), func(mgr *storage.Manager) error {
				res, err := service.NewSweepService(mgr, &cfg).Run(cmd.Context())
				if err != nil {
					return err
				}

				for _, p := range res.Removed {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}

				fmt.Fprintln(cmd.OutOrStdout(), res.String())

				return nil
			})
		},
	}
)

func registerSweepCommands() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "list orphans without deleting them")

	rootCmd.AddCommand(sweepCmd)
}
