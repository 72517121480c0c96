package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/cinenz0/finance-tracker/internal/config"
	"github.com/cinenz0/finance-tracker/internal/storage"
	"github.com/cinenz0/finance-tracker/internal/store"
)

// initStorage opens the database at the configured path with
// auto-migration.
func initStorage(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	kv, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := kv.Migrate(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return kv, nil
}

// openLedger opens storage and loads the record store.
func openLedger(ctx context.Context) (*storage.SQLiteStore, *store.Ledger, error) {
	kv, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := store.OpenLedger(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return kv, ledger, nil
}

// openRegistry opens storage and loads the tag and group registry.
func openRegistry(ctx context.Context) (*storage.SQLiteStore, *store.Registry, error) {
	kv, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	registry, err := store.OpenRegistry(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return kv, registry, nil
}

// backupDir resolves the configured snapshot directory.
func backupDir() string {
	dir := viper.GetString("backup.directory")
	if dir == "" {
		return config.DefaultBackupDir()
	}
	return config.ExpandPath(dir)
}

// shortID abbreviates an id for table display. Ids minted here are
// UUIDs, but restored snapshots may carry shorter ones.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// resolveTxID expands an id prefix (as shown by 'tx list') to the full
// transaction id. Ambiguous prefixes are an error.
func resolveTxID(ledger *store.Ledger, prefix string) (string, error) {
	var match string
	for _, t := range ledger.Transactions() {
		if t.ID == prefix {
			return t.ID, nil
		}
		if len(prefix) >= 4 && len(t.ID) >= len(prefix) && t.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return prefix, nil
	}
	return match, nil
}
