package db

import (
	"fmt"
	"io"
)

// RunMigrateCommand applies one migrate action (up, down or status) and
// prints the resulting schema version to w.
func (db *DB) RunMigrateCommand(action string, w io.Writer) error {
	switch action {
	case "up":
		if err := db.MigrateUp(); err != nil {
			return err
		}
	case "down":
		if err := db.MigrateDown(); err != nil {
			return err
		}
	case "status":
	default:
		return fmt.Errorf("unknown migrate action %q (want up, down or status)", action)
	}

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	fmt.Fprintf(w, "Current version: %d\nDirty: %v\n", version, dirty)
	if dirty {
		fmt.Fprintln(w, "WARNING: a migration failed mid-execution; inspect the database before retrying")
	}
	return nil
}
