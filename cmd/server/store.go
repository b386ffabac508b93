package main

import (
	"database/sql"

	"github.com/circa/reservations/internal/config"
	"github.com/circa/reservations/internal/database"
)

func openSQL(cfg config.Config) (*sql.DB, error) {
	if cfg.StoreDriver == config.DriverMySQL {
		return database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	return database.OpenSQLite(cfg.SQLitePath)
}
