// Command approve unlocks or locks receipt scanning for an account.
//
//	approve -email alice@example.com
//	approve -email alice@example.com -revoke
//
// The database is located through DB_PATH, as for the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmynk/billsplitter/internal/config"
	"github.com/mmynk/billsplitter/internal/storage"
	"github.com/mmynk/billsplitter/internal/storage/sqlite"
	"github.com/mmynk/billsplitter/pkg/logging"
)

func main() {
	email := flag.String("email", "", "account email")
	revoke := flag.Bool("revoke", false, "lock scanning instead of unlocking it")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := setApproval(context.Background(), store, *email, !*revoke); err != nil {
		logger.Error("Failed to update approval", "email", *email, "error", err)
		os.Exit(1)
	}
	logger.Info("Approval updated", "email", *email, "approved", !*revoke)
}

func setApproval(ctx context.Context, store storage.Store, email string, approved bool) error {
	user, err := store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	return store.SetApproval(ctx, user.ID, approved)
}

func openStore(path string) (storage.Store, error) {
	return sqlite.New(path)
}
