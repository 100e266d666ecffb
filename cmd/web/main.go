// cmd/web/main.go
//
// Ateliere la Scânteia – HTTP entry point.
//
// Start-up
// --------
//
//  1. Load configuration (defaults → conf/.env → conf/global.yaml →
//     SCANTEIA_ env, vault: references resolved).
//
//  2. Start the rotating logger (tees to console when running in a TTY).
//
//  3. Open the database pool and log the active sites as an early sanity
//     check.
//
//  4. Build the collaborators: content cache (lazy site loader), media
//     resolver, mailer, optional GeoLite2 reader.
//
//  5. Register the components (mainpage, jurnal, membrii, newsletter) and
//     build the root handler.
//
//  6. Serve until SIGINT/SIGTERM, then drain in-flight requests.
//
// Large comment blocks are framed by blank "//" lines; inline comments use
// a single "//".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // Europe/Bucharest on minimal images

	"github.com/FlorinRO/ateliere-la-scanteia/internal/component"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/config"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/content"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/database"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/httpapi"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/journal"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/mail"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/media"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/membership"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/newsletter"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/requestinfo"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/server"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/site"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Log.Dir, cfg.Log.Level, logger.IsTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Database ────────────────────────────────────────────────────
	//
	dsn, err := database.BuildDSN(cfg.Database.DSN, cfg.Database.Password)
	if err != nil {
		logOut.Fatalw("bad database dsn", "err", err)
	}
	logOut.Info("connecting to database …")
	db, err := database.OpenWithOptions(ctx, dsn, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: database.DefaultOptions.ConnMaxLifetime,
		Retries:         cfg.Database.Retries,
		RetryBackoff:    cfg.Database.RetryBackoff,
	})
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	logOut.Info("database online")

	// Log active sites as an early sanity check.
	if sites, err := site.AllActive(ctx, db); err != nil {
		logOut.Warnw("list active sites", "err", err)
	} else {
		hosts := make([]string, 0, len(sites))
		for _, s := range sites {
			hosts = append(hosts, s.Host)
		}
		logOut.Infow("active sites", "count", len(sites), "hosts", hosts)
	}

	//
	// ── 2.  Collaborators ───────────────────────────────────────────────
	//
	cache := content.NewCache(content.DBLoader(db), content.Options{
		IdleTTL: cfg.Site.IdleTTL,
		MaxAge:  cfg.Site.CacheTTL,
		Log:     logOut,
	})
	defer cache.Close()

	resolver, err := media.New(ctx, cfg.Media, logOut)
	if err != nil {
		logOut.Fatalw("media resolver", "err", err)
	}
	mailer := mail.New(cfg.Mail, logOut)

	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		logOut.Warnw("geo lookups disabled", "err", err)
	}

	loc, err := time.LoadLocation(cfg.Membership.TimeZone)
	if err != nil {
		logOut.Warnw("unknown time zone, using local", "tz", cfg.Membership.TimeZone, "err", err)
		loc = time.Local
	}
	if cfg.Membership.NotifyTo == "" {
		logOut.Warn("membership.notify_to is empty; applications will be refused")
	}

	//
	// ── 3.  Components ──────────────────────────────────────────────────
	//
	jurnal := &journal.Component{Reader: journal.NewRepository(db), Media: resolver}

	var reg component.Registry
	reg.Register(&content.Component{Media: resolver})
	reg.Register(jurnal)
	reg.Register(&membership.Component{
		Service: membership.NewService(membership.NewRepository(db), mailer, membership.Options{
			NotifyTo:    cfg.Membership.NotifyTo,
			MinChildAge: cfg.Membership.MinChildAge,
			Location:    loc,
		}),
	})
	reg.Register(&newsletter.Component{
		Service: newsletter.NewService(newsletter.NewSQLStore(db), mailer, newsletter.Options{
			ConfirmTTL:    cfg.Newsletter.ConfirmTTL,
			PublicBaseURL: cfg.HTTP.PublicBaseURL,
		}),
	})

	handler := httpapi.New(httpapi.Deps{
		Log:            logOut,
		Sites:          cache,
		LocalhostAlias: cfg.Site.LocalhostAlias,
		Components:     &reg,
		SEO:            jurnal,
		DB:             db,
		ForceHTTPS:     cfg.HTTP.ForceHTTPS,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
	})

	//
	// ── 4.  Serve ───────────────────────────────────────────────────────
	//
	if err := server.Run(ctx, server.New(cfg.HTTP.ListenAddr, handler), logOut); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Info("bye")
}
