// Package database handles database connections and schema inspection.
//
// It wraps GORM and configures either an embedded SQLite file (the default, kept under
// /config so it survives container rebuilds) or a MySQL server, based on the
// application's configuration.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema so the health endpoint can
// report tables that AutoMigrate failed to bring up to date.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "sync_map", []string{"source_key", "status"})
package database
