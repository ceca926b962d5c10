package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rl1809/bakery-ledger/internal/adapter/audit"
	"github.com/rl1809/bakery-ledger/internal/adapter/auth"
	"github.com/rl1809/bakery-ledger/internal/adapter/handler"
	"github.com/rl1809/bakery-ledger/internal/adapter/notify"
	"github.com/rl1809/bakery-ledger/internal/adapter/storage"
	"github.com/rl1809/bakery-ledger/internal/core/service"
)

func main() {
	cfg := LoadConfig()

	root := &cobra.Command{
		Use:   "bakery",
		Short: "Single-user bakery order ledger over a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	flags := root.Flags()
	flags.StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "primary order CSV file")
	flags.StringVar(&cfg.BackupFile, "backup-file", cfg.BackupFile, "backup snapshot CSV file")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "action log file")
	flags.StringVar(&cfg.Username, "username", cfg.Username, "session username")
	flags.StringVar(&cfg.Password, "password", cfg.Password, "session password")

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("bakery: %v", err)
	}
}

func run(ctx context.Context, cfg Config) error {
	repo := storage.NewCSVAdapter(cfg.DataFile, cfg.BackupFile)
	actionLog := audit.NewFileLog(cfg.LogFile)
	notifier := notify.NewConsoleNotifier(os.Stdout)

	store, err := service.NewOrderStore(ctx, repo, actionLog, notifier)
	if err != nil {
		return err
	}

	authn := auth.NewStaticAuthenticator(cfg.Username, cfg.Password)
	menu := handler.NewMenuHandler(store, authn, actionLog, os.Stdin, os.Stdout)
	return menu.Run(ctx)
}
