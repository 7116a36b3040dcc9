package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
)

var (
	blobOlderThan time.Duration
	blobMonths    int

	blobCmd = &cobra.Command{
		Use:   "blob",
		Short: "Torrent file store related commands",
	}

	blobListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list stored torrent files",
		Aliases: []string{"list"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := blob.New(cmd.Context(), configs.GetConfig())
			if err != nil {
				return err
			}

			objs, err := store.List(cmd.Context(), time.Now().Add(-blobOlderThan))
			if err != nil {
				return err
			}

			for _, o := range objs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", o.ModTime.Format(time.RFC3339), o.Size, o.Path)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d files on %s\n", len(objs), store.Kind())

			return nil
		},
	}

	blobPrepareCmd = &cobra.Command{
		Use:   "prepare",
		Short: "create month directories for the current and upcoming months",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := blob.New(cmd.Context(), configs.GetConfig())
			if err != nil {
				return err
			}

			now := time.Now()
			for i := range blobMonths {
				at := now.AddDate(0, i, 1-now.Day())
				if err := store.Prepare(cmd.Context(), at); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "prepared "+blob.MonthDir(at))
			}

			return nil
		},
	}
)

func registerBlobCommands() {
	blobListCmd.Flags().DurationVar(&blobOlderThan, "older-than", 0, "only list files older than this duration")
	blobPrepareCmd.Flags().IntVar(&blobMonths, "months", 2, "number of months to prepare starting from now")

	blobCmd.AddCommand(blobListCmd)
	blobCmd.AddCommand(blobPrepareCmd)
	rootCmd.AddCommand(blobCmd)
}
