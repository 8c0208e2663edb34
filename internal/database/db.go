package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the facility catalog tables when they do not exist.
// The reservation list itself lives in the key-value store, not here;
// MySQL only holds the catalog the owners manage.
func Migrate(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS facilities (
            id         VARCHAR(36)  NOT NULL PRIMARY KEY,
            owner_id   VARCHAR(64)  NOT NULL,
            name       VARCHAR(255) NOT NULL,
            address    VARCHAR(255) NOT NULL,
            rating     DECIMAL(3,1) NOT NULL DEFAULT 0,
            image_ref  VARCHAR(512) NOT NULL DEFAULT '',
            created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
            KEY idx_facilities_owner (owner_id),
            KEY idx_facilities_rating (rating)
        ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS facility_slots (
            facility_id VARCHAR(36)  NOT NULL,
            slot_label  VARCHAR(8)   NOT NULL,
            position    INT UNSIGNED NOT NULL,
            PRIMARY KEY (facility_id, slot_label),
            KEY idx_facility_slots_order (facility_id, position)
        ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing migration: %w", err)
		}
	}
	return nil
}
