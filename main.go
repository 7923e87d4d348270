package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"knowbase-core/authsync"
	"knowbase-core/chat"
	"knowbase-core/kv"
	"knowbase-core/metrics"
	"knowbase-core/session"
	"knowbase-core/utils"
)

var (
	version = "0.1.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("KnowBase Sync Bridge v%s\n", version)
		os.Exit(0)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.GetLogPath())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting KnowBase sync bridge v%s", version)

	// Load or create default configuration
	var config *utils.Config
	var actualConfigPath string
	if *configPath != "" {
		actualConfigPath = *configPath
		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	} else {
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			logger.Error("Failed to create default config: %v", err)
			os.Exit(1)
		}
		logger.Info("Using config file: %s", actualConfigPath)

		config, err = utils.LoadConfig(actualConfigPath)
		if err != nil {
			logger.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}

	m := metrics.NewMetrics()

	// Page-context store
	pageStore, err := kv.NewSQLiteStore(config.Data.DBPath, logger)
	if err != nil {
		logger.Error("Failed to open page store: %v", err)
		os.Exit(1)
	}
	defer pageStore.Close()

	// Extension-context store
	extStore, err := kv.NewBadgerStore(config.Data.ExtensionDBPath, logger)
	if err != nil {
		logger.Error("Failed to open extension store: %v", err)
		os.Exit(1)
	}
	defer extStore.Close()

	sess := session.New(pageStore, logger)
	if username, ok := sess.Username(); ok {
		logger.Info("Active session for %s", username)
	}

	history := chat.NewStore(pageStore, logger)
	history.AttachMetrics(m)
	history.Load()
	logger.Info("Loaded %d conversations", len(history.Conversations()))

	subscriber := authsync.NewSubscriber(extStore, logger)
	subscriber.AttachMetrics(m)

	// Pick the transport: NATS when configured, in-process loopback otherwise
	var transport authsync.Transport
	var natsConn *nats.Conn
	var natsSub *nats.Subscription
	if config.Sync.NATSURL != "" {
		natsConn, err = nats.Connect(config.Sync.NATSURL, nats.Name("knowbase-sync"))
		if err != nil {
			logger.Error("Failed to connect to NATS: %v", err)
			os.Exit(1)
		}
		transport = authsync.NewNATSTransport(natsConn, config.Sync.Subject)
		natsSub, err = authsync.ListenNATS(natsConn, config.Sync.Subject, subscriber)
		if err != nil {
			logger.Error("Failed to subscribe to NATS: %v", err)
			os.Exit(1)
		}
		logger.Info("Using NATS transport on %s", config.Sync.Subject)
	} else {
		loopback := authsync.NewLoopback()
		loopback.OnMessage(subscriber.Handle)
		transport = loopback
		logger.Info("Using in-process loopback transport")
	}

	publisher := authsync.NewPublisher(pageStore, transport, logger)
	publisher.AttachMetrics(m)

	interval := time.Duration(config.Sync.IntervalMS) * time.Millisecond
	detector := authsync.NewDetector(pageStore, publisher, interval, logger)
	detector.AttachMetrics(m)
	detector.Start()
	logger.Info("Change detector started, polling every %s", detector.Interval())

	// Metrics endpoint
	if config.Metrics.ListenAddr != "" {
		addr := config.Metrics.ListenAddr
		utils.SafeGo(logger, "metrics.server", func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("Metrics server stopped: %v", err)
			}
		})
		logger.Info("Metrics available on %s/metrics", addr)
	}

	// Wait for shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	detector.Stop()
	if natsSub != nil {
		_ = natsSub.Unsubscribe()
	}
	if natsConn != nil {
		natsConn.Close()
	}
}
