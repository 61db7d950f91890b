package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AddIndexes adds the non-unique lookup indexes the hot queries rely on.
// The composite unique index on todo_shares(todo_id, shared_with_user_id)
// comes from the model tags during AutoMigrate.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Todo indexes for the owner list with filters and sort
		{"todos", "idx_todos_owner_id", "owner_id"},
		{"todos", "idx_todos_is_completed", "is_completed"},
		{"todos", "idx_todos_priority", "priority"},
		{"todos", "idx_todos_created_at", "created_at"},

		// Share lookups by either side of the relation
		{"todo_shares", "idx_todo_shares_todo_id", "todo_id"},
		{"todo_shares", "idx_todo_shares_shared_with_user_id", "shared_with_user_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table)
	}

	return nil
}
