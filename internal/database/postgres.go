package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openPostgres(cfg Config) (*gorm.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = 5432
		}

		parts := []string{
			fmt.Sprintf("host=%s", host),
			fmt.Sprintf("port=%d", port),
			fmt.Sprintf("dbname=%s", cfg.Name),
		}
		if cfg.User != "" {
			parts = append(parts, fmt.Sprintf("user=%s", cfg.User))
		}
		if cfg.Password != "" {
			parts = append(parts, fmt.Sprintf("password=%s", cfg.Password))
		}

		if _, ok := cfg.Options["sslmode"]; !ok {
			parts = append(parts, "sslmode=disable")
		}

		keys := make([]string, 0, len(cfg.Options))
		for key := range cfg.Options {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, cfg.Options[key]))
		}

		dsn = strings.Join(parts, " ")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	return db, nil
}
