package database

import (
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v4"

	"github.com/HassanAli010/UserPref-CRS/internal/config"
)

var DB *badger.DB

// ConnectDB opens the embedded BadgerDB used when STORE_BACKEND=badger.
// The JSON backend never touches this.
func ConnectDB() error {
	cfg := config.GlobalConfig

	opts := badger.DefaultOptions(cfg.BadgerPath)
	opts.Logger = nil // badger's own logger is too chatty for this app

	var err error
	DB, err = badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger store: %w", err)
	}

	log.Println("✅ BadgerDB opened at", cfg.BadgerPath)
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	if err := DB.Close(); err != nil {
		log.Println("⚠️ Failed to close badger store:", err)
	}
}
