package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/db"
	"github.com/yeisme/torrentvault/pkg/internal/storage/kv"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered database types",
		Aliases: []string{"list"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")

			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(dbType))
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create tables and seed reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.GetConfig()

			client, err := db.New(cmd.Context(), &cfg.DB)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := model.Migrate(cmd.Context(), client.DB); err != nil {
				return err
			}

			if err := invalidateReferenceCache(cmd.Context(), cfg, client); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables on %s\n", len(model.All()), cfg.DB.GetDBType())

			return nil
		},
	}
)

// invalidateReferenceCache 种子化后清理共享 KV 中的参照集合缓存. 内存 KV 只存在于各进程内，跳过.
func invalidateReferenceCache(ctx context.Context, cfg *configs.AppConfig, client *db.Client) error {
	if kv.KVType(cfg.KV.Type) == kv.KVTypeMemory {
		return nil
	}

	kvClient, err := kv.NewKVClient(ctx, cfg.KV)
	if err != nil {
		return fmt.Errorf("init kv: %w", err)
	}
	defer func() { _ = kvClient.Close() }()

	svc := service.NewReleaseService(&storage.Manager{DB: client, KV: kvClient}, cfg)
	if err := svc.InvalidateReferences(ctx); err != nil {
		return fmt.Errorf("invalidate reference cache: %w", err)
	}

	return nil
}

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
