package database

import (
	"database/sql"
	"fmt"
	"os"
)

func Migrate(db *sql.DB) error {
	b, err := os.ReadFile(schemaPath())
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func schemaPath() string {
	if p := os.Getenv("EVENTHUB_SCHEMA_PATH"); p != "" {
		return p
	}
	return "docs/schema.sql"
}
