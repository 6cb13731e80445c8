package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/domain-landing/auth"
	"github.com/danielhkuo/domain-landing/cliparse"
	"github.com/danielhkuo/domain-landing/content"
	"github.com/danielhkuo/domain-landing/db"
	"github.com/danielhkuo/domain-landing/form"
	"github.com/danielhkuo/domain-landing/handlers"
	"github.com/danielhkuo/domain-landing/live"
	"github.com/danielhkuo/domain-landing/middleware"
	"github.com/danielhkuo/domain-landing/models"
	"github.com/danielhkuo/domain-landing/router"
	"github.com/danielhkuo/domain-landing/session"
	"github.com/danielhkuo/domain-landing/submitters"
	"github.com/danielhkuo/domain-landing/telemetry"
	"github.com/danielhkuo/domain-landing/widgets/countdown"
	"github.com/danielhkuo/domain-landing/widgets/counter"
	"github.com/danielhkuo/domain-landing/widgets/pricing"
)

func main() {
	var err error

	// Text logs on a terminal, JSON otherwise
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	// Parse configuration, .env first so flags and real env vars win
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Page content
	pageContent, err := content.Load(cfg.ContentPath)
	if err != nil {
		slog.Error("content load failed", "error", err)
		os.Exit(1)
	}
	if cfg.Domain != "" {
		pageContent.Domain = cfg.Domain
	}

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(pageContent.Domain, cfg.AdminKeySalt))
		return
	}

	// Connect to the database and apply migrations
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Analytics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promSink, err := telemetry.NewPrometheusSink(registry)
	if err != nil {
		slog.Error("metrics setup failed", "error", err)
		os.Exit(1)
	}
	funnel := telemetry.NewFunnel(10000)
	events := db.NewEventRepo(dbConn)
	sink := telemetry.Multi{telemetry.LogSink{}, promSink, funnel, events}

	// Submission backend
	inquiries := db.NewInquiryRepo(dbConn)
	var submitter form.Submitter
	switch cfg.SubmitMode {
	case models.SubmitStore:
		submitter = submitters.NewStore(inquiries)
	case models.SubmitHTTP:
		submitter = submitters.NewHTTP(cfg.SubmitEndpoint)
	default:
		submitter = submitters.Stub{Latency: cfg.SubmitLatency}
	}
	slog.Info("Submissions configured", "mode", cfg.SubmitMode)

	// Widgets and live feed
	start := time.Now()
	sessions := session.NewStore(session.Options{TTL: cfg.SessionTTL, Content: pageContent, Sink: sink})
	market := pricing.NewMarket(pageContent.Pricing, nil)
	inquiryCounter := counter.New(pageContent.InquiryCounterBase, nil)
	timer := countdown.New(start, pageContent.CountdownOffset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := live.NewHub()
	go hub.Run(ctx)

	scheduler := live.NewScheduler()
	err = live.Boot(scheduler,
		live.PriceFeed{Market: market, Out: hub},
		live.CounterFeed{Counter: inquiryCounter, Out: hub},
		live.CountdownFeed{Timer: timer, Out: hub},
		live.Sweeper{Store: sessions},
	)
	if err != nil {
		slog.Error("live components failed", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	svc := &handlers.Services{
		Content:  pageContent,
		Sessions: sessions,
		Pipeline: form.NewPipeline(submitter,
			form.WithConversionSink(sink),
			form.WithDefaultHost(pageContent.Domain),
			form.WithSource(pageContent.Source)),
		Sink:      sink,
		Funnel:    funnel,
		Market:    market,
		Counter:   inquiryCounter,
		Countdown: timer,
		Events:    events,
		Live:      hub,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	if cfg.SubmitMode == models.SubmitStore {
		svc.Inquiries = inquiries
	}

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux, cfg.CORSOrigins...),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()

		scheduler.Stop(shutdownCtx)
		cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "domain", pageContent.Domain)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
