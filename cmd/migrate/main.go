// Command migrate applies the database schema explicitly. Production
// deployments run this instead of relying on startup automigration.
package main

import (
	"fmt"
	"log"

	"joinwork/internal/config"
	"joinwork/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreDriver == "memory" {
		return fmt.Errorf("nothing to migrate: STORE_DRIVER is memory")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Println("migrations applied")
	return nil
}
