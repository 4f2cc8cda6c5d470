// Package main applies the embedded PostgreSQL schema migrations.
package main

import (
	"errors"
	"log"

	"github.com/jessevdk/go-flags"

	"github.com/Radiant-Core/rxindexer/internal/store/migrations"
)

type config struct {
	PostgresDSN string `long:"postgres-dsn" env:"MIGRATIONS_POSTGRES_DSN" default:"postgres://localhost:5432/rxindexer?sslmode=disable" description:"PostgreSQL DSN"`
	Down        bool   `long:"down" env:"MIGRATIONS_DOWN" description:"revert all migrations instead of applying them"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	run := migrations.Up
	action := "applied"
	if cfg.Down {
		run = migrations.Down
		action = "reverted"
	}

	if err := run(cfg.PostgresDSN); err != nil {
		log.Fatalf("migration run failed: %v", err)
	}
	log.Printf("migrations %s successfully", action)
}
