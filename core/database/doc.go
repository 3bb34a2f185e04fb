// Package database handles database connections.
//
// It wraps GORM to open either a MySQL server or a SQLite file based on the
// application's configuration. The connection backs the change history ledger
// (core/history) and is optional: reconciliation works without it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
