package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	internalApp "github.com/haierkeys/fast-vault-service/internal/app"
	"github.com/haierkeys/fast-vault-service/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type checkFlags struct {
	config  string
	storage bool
}

func init() {
	checkEnv := new(checkFlags)

	var checkCommand = &cobra.Command{
		Use:   "check [-c config_file] [--storage]",
		Short: "Validate the config file and optionally probe the storage backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, realpath, err := internalApp.LoadConfig(checkEnv.config)
			if err != nil {
				return err
			}
			fmt.Printf("config ok: %s\n", realpath)
			fmt.Printf("database: %s  storage: %s  delete-policy: %s\n", cfg.Database.Type, cfg.Storage.Type, cfg.Security.DeletePolicy)

			if !checkEnv.storage {
				return nil
			}
			return probeStorage(cmd.Context(), &cfg.Storage)
		},
	}

	rootCmd.AddCommand(checkCommand)
	fs := checkCommand.Flags()
	fs.StringVarP(&checkEnv.config, "config", "c", "config/config.yaml", "config file")
	fs.BoolVar(&checkEnv.storage, "storage", false, "write a small probe object through the configured storage backend")
}

// probeStorage 通过配置的存储后端写入一个探测对象，对象不会被删除
func probeStorage(ctx context.Context, cfg *storage.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := storage.NewClient(cfg, bootstrapLogger)
	if err != nil {
		return err
	}

	body := "fast-vault-service storage probe"
	url, err := client.Store(ctx, strings.NewReader(body), int64(len(body)), "probe.txt", "probe")
	if err != nil {
		return err
	}
	bootstrapLogger.Info("storage probe written", zap.String("storage", cfg.Type), zap.String("url", url))
	fmt.Printf("storage ok: %s\n", url)
	return nil
}
