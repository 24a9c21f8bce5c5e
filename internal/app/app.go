package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/kafka"
	"github.com/niksmo/catalog/internal/adapter/mongodb"
	"github.com/niksmo/catalog/internal/adapter/razorpay"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"gopkg.in/natefinch/lumberjack.v2"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	logFile    io.Closer
	db         mongodb.DB
	resolver   *mongodb.Resolver
	payments   *razorpay.Client
	serde      *schema.ProductCreatedSerde
	producer   *kafka.ProductEventsProducer
	service    service.Service
	metrics    *httphandler.Metrics
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initPayments()
	if cfg.Broker.Enabled() {
		app.initSerde()
		app.initProducer()
	}
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	level, _ := app.cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var w io.Writer = os.Stderr
	if app.cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   app.cfg.LogFile,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stderr, lj)
		app.logFile = lj
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	db, err := mongodb.Connect(
		app.ctx, app.cfg.Mongo.URI, app.cfg.Mongo.Database,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.db = db
	app.resolver = mongodb.NewResolver(db.Database())
}

func (app *App) initPayments() {
	const op = "App.initPayments"
	log := slog.With("op", op)

	if app.cfg.Payment.KeyID == "" || app.cfg.Payment.KeySecret == "" {
		log.Warn("payment gateway credentials are not set")
	}

	app.payments = razorpay.New(
		app.cfg.Payment.KeyID,
		app.cfg.Payment.KeySecret,
		razorpay.BaseURLOpt(app.cfg.Payment.BaseURL),
		razorpay.TimeoutOpt(app.cfg.Payment.Timeout),
	)
}

func (app *App) initSerde() {
	const op = "App.initSerde"
	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ProductEvents + "-value"
	serde, err := schema.NewSerdeProductCreatedV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.serde = serde
}

func (app *App) initProducer() {
	const op = "App.initProducer"

	brokerCfg := app.cfg.Broker

	var opts []kafka.ProducerOpt
	if brokerCfg.TLS.Enabled() {
		tlsCfg, err := adapter.MakeTLSConfig(
			brokerCfg.TLS.CA, brokerCfg.TLS.Cert, brokerCfg.TLS.Key,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		opts = append(opts, kafka.ProducerTLSOpt(tlsCfg))
	}
	opts = append(opts,
		kafka.ProducerClientOpt(
			app.ctx, brokerCfg.SeedBrokers, brokerCfg.Topics.ProductEvents,
		),
		kafka.ProducerEncoderOpt(app.serde),
	)

	producer, err := kafka.NewProductEventsProducer(opts...)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = &producer
}

func (app *App) initCoreService() {
	var events port.ProductEventsProducer
	if app.producer != nil {
		events = app.producer
	}
	app.service = service.New(
		app.resolver,
		app.payments,
		events,
		service.EventTimeoutOpt(app.cfg.Broker.EventTimeout),
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	app.metrics = httphandler.NewMetrics()

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service, app.metrics)
	httphandler.RegisterHealth(mux, app.db)
	httphandler.RegisterMetrics(mux, app.metrics)

	handler := httphandler.Chain(mux)
	app.httpServer = httphandler.NewHTTPServer(
		addr, handler, app.cfg.HandlerTimeout,
	)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running", "addr", app.cfg.HTTPServerAddr)
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.producer != nil {
		app.producer.Close()
	}
	slog.Info("collections served", "names", app.resolver.Names())
	app.db.Close(ctx)

	slog.Info("application is closed")
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
