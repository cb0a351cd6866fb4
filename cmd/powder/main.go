package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	httpapi "github.com/hillbillynomad/powder/internal/api/http"
	"github.com/hillbillynomad/powder/internal/config"
	"github.com/hillbillynomad/powder/internal/httpcache"
	"github.com/hillbillynomad/powder/internal/logger"
	"github.com/hillbillynomad/powder/internal/report"
	"github.com/hillbillynomad/powder/internal/resort"
	"github.com/hillbillynomad/powder/internal/scheduler"
	"github.com/hillbillynomad/powder/internal/snowfall"
	"github.com/hillbillynomad/powder/internal/snowfall/providers"
	"github.com/hillbillynomad/powder/internal/store"
)

const defaultHistoryDays = 14

func main() {
	var (
		days       = flag.Int("days", 7, "number of forecast days")
		resortSlug = flag.String("resort", "park_city_mountain", "resort to forecast (see --list)")
		list       = flag.Bool("list", false, "list available resorts")
		country    = flag.String("country", "", "filter resorts by country code")
		nearest    = flag.String("nearest", "", "find the resort nearest to \"lat,lon\"")
		historical = flag.Bool("historical", false, "show recent measured snowfall instead of a forecast")
		exportPath = flag.String("export-json", "", "write the combined forecast document to this file")
		noCache    = flag.Bool("no-cache", false, "disable the HTTP response cache")
		clearCache = flag.Bool("clear-cache", false, "remove all cached responses and exit")
		serve      = flag.Bool("serve", false, "run the HTTP API server")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.IntVar(days, "d", 7, "shorthand for -days")
	flag.Parse()

	logger.SetVerbose(*verbose)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *noCache {
		cfg.CacheEnabled = false
	}

	cacheTransport := httpcache.New(cfg.CacheConfig(), nil)
	if *clearCache {
		if err := cacheTransport.Clear(); err != nil {
			logger.Fatalf("clear cache: %v", err)
		}
		fmt.Println("Cache cleared.")
		return
	}

	client := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: cacheTransport,
	}

	db, err := resort.Load(cfg.ResortsFile)
	if err != nil {
		logger.Fatalf("load resorts: %v", err)
	}

	service := snowfall.NewService(
		providers.DefaultCapabilities(client),
		providers.DefaultHistory(client),
	)

	switch {
	case *serve:
		runServer(cfg, service, db)
	case *list:
		report.WriteResortList(os.Stdout, db.ByCountry(*country))
	case *nearest != "":
		runNearest(db, *nearest)
	case *exportPath != "":
		resorts := db.ByCountry(*country)
		ctx := context.Background()
		if err := report.ExportJSON(ctx, service, resorts, *days, defaultHistoryDays, *exportPath); err != nil {
			logger.Fatalf("export: %v", err)
		}
		fmt.Printf("Exported %d resorts to %s\n", len(resorts), *exportPath)
	case *historical:
		rst := mustResort(db, *resortSlug)
		obs := service.History(context.Background(), rst, defaultHistoryDays)
		report.WriteHistoryTable(os.Stdout, rst, obs)
	default:
		rst := mustResort(db, *resortSlug)
		results := service.Forecast(context.Background(), rst, *days)
		report.WriteForecastTable(os.Stdout, rst, results, service.SourcesFor(rst))
	}
}

func mustResort(db *resort.Database, slug string) resort.Resort {
	rst, ok := db.BySlug(slug)
	if !ok {
		logger.Fatalf("unknown resort %q; run with --list to see available resorts", slug)
	}
	return rst
}

func runNearest(db *resort.Database, coords string) {
	latStr, lonStr, ok := strings.Cut(coords, ",")
	if !ok {
		logger.Fatalf("--nearest expects \"lat,lon\"")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		logger.Fatalf("invalid latitude %q", latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		logger.Fatalf("invalid longitude %q", lonStr)
	}

	rst, miles := db.Nearest(lat, lon)
	fmt.Printf("Nearest resort: %s (%s, %s), %.1f miles away. Slug: %s\n",
		rst.Name, rst.Region, rst.Country, miles, rst.Slug())
}

func runServer(cfg *config.AppConfig, service *snowfall.Service, db *resort.Database) {
	logger.UseJSON()

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.SnapshotMaxAge)

	var tracked []resort.Resort
	for _, slug := range cfg.TrackedResorts {
		rst, ok := db.BySlug(slug)
		if !ok {
			logger.Warnf("tracked resort %q not in database; skipping", slug)
			continue
		}
		tracked = append(tracked, rst)
	}

	sched := scheduler.New(tracked, cfg.RefreshInterval, 7, service, memStore)
	if err := sched.Start(); err != nil {
		logger.Fatalf("start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "powder",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "powder",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service:        service,
		Store:          memStore,
		Resorts:        db,
		SnapshotMaxAge: cfg.SnapshotMaxAge,
	})

	go func() {
		logger.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Errorf("server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
