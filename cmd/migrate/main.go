// cmd/migrate/main.go
//
// Schema migration tool.  Uses the same configuration layers as cmd/web,
// so a `vault:` database password works here too.
//
// Usage
//
//	migrate -up          apply every pending migration
//	migrate -down 1      roll back the last migration
//	migrate -version     print the current schema version
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/config"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/database"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
)

func main() {
	up := flag.Bool("up", false, "apply all pending migrations")
	down := flag.Int("down", 0, "roll back N migrations")
	version := flag.Bool("version", false, "print the current schema version")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logOut, err := logger.New(cfg.Log.Dir, cfg.Log.Level, true)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	dsn, err := database.BuildDSN(cfg.Database.DSN, cfg.Database.Password)
	if err != nil {
		logOut.Fatalw("bad database dsn", "err", err)
	}
	m, err := database.NewMigrator(dsn)
	if err != nil {
		logOut.Fatalw("open migrator", "err", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			logOut.Fatalw("read version", "err", err)
		}
		fmt.Fprintf(os.Stdout, "version %d (dirty=%t)\n", v, dirty)
	case *down > 0:
		if err := m.Down(*down); err != nil {
			logOut.Fatalw("migrate down", "steps", *down, "err", err)
		}
		logOut.Infow("migrated down", "steps", *down)
	case *up:
		if err := m.Up(); err != nil {
			logOut.Fatalw("migrate up", "err", err)
		}
		logOut.Info("migrations applied")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
