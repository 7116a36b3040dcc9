package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

var (
	ingestFile     string
	ingestRelease  string
	ingestUploader string

	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "ingest one torrent file with its release JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(ingestFile)
			if err != nil {
				return fmt.Errorf("read torrent: %w", err)
			}

			raw, err := os.ReadFile(ingestRelease)
			if err != nil {
				return fmt.Errorf("read release: %w", err)
			}

			form, err := types.ParseReleaseForm(raw)
			if err != nil {
				return err
			}

			sub, err := form.ToSubmission()
			if err != nil {
				return err
			}

			sub.Torrent = data
			sub.FileName = filepath.Base(ingestFile)
			sub.UploaderID = ingestUploader

			return withManager(cmd.Context(), func(mgr *storage.Manager) error {
				res, err := service.NewReleaseService(mgr, configs.GetConfig()).Ingest(cmd.Context(), sub)
				if err != nil {
					return err
				}

				out, err := sonic.ConfigStd.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(out))

				return nil
			})
		},
	}
)

func registerIngestCommands() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "path to the .torrent file")
	ingestCmd.Flags().StringVarP(&ingestRelease, "release", "r", "", "path to the release JSON")
	ingestCmd.Flags().StringVarP(&ingestUploader, "uploader", "u", "", "uploader id recorded on the torrent")

	_ = ingestCmd.MarkFlagRequired("file")
	_ = ingestCmd.MarkFlagRequired("release")
	_ = ingestCmd.MarkFlagRequired("uploader")

	rootCmd.AddCommand(ingestCmd)
}
