package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"musicstream/internal/bridge"
	"musicstream/internal/config"
	"musicstream/internal/eventbus"
	"musicstream/internal/player"
	"musicstream/internal/search"
	"musicstream/internal/searchapi"
	"musicstream/internal/ui"
)

func main() {
	var (
		configPath string
		apiURL     string
		noBridge   bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&apiURL, "api", "", "Base URL of the song search API")
	flag.BoolVar(&noBridge, "no-bridge", false, "Do not serve the browser player page")
	flag.Parse()

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg := loadConfig(configSvc)
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if noBridge {
		cfg.Bridge.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingBaseURL) {
			fmt.Printf("No search API configured. Set it in %s, with -api or %s.\n", configSvc.Path(), config.EnvAPIURL)
		} else {
			fmt.Printf("Invalid config: %v\n", err)
		}
		os.Exit(1)
	}

	logFile := setupLogging(cfg.Log)
	if logFile != nil {
		defer logFile.Close()
	}
	log.WithField("config", configSvc.Path()).Info("Starting musicstream")

	bus := eventbus.New()
	defer bus.Close()

	metrics := bridge.NewMetrics()
	unsubscribe := metrics.Subscribe(bus)
	defer unsubscribe()

	api := searchapi.New(cfg.API.BaseURL, cfg.API.Timeout.Duration)
	ctrl := search.NewController(api,
		search.WithDebounce(cfg.Search.Debounce.Duration),
		search.WithTimeout(cfg.API.Timeout.Duration),
		search.WithEventBus(bus),
	)
	defer ctrl.Close()

	coord := player.NewCoordinator()

	// Frames report back through the program, so the sink needs it once it exists
	var p *tea.Program
	opts := []ui.Option{ui.WithEventBus(bus)}

	var srv *bridge.Server
	if cfg.Bridge.Enabled {
		srv = bridge.New(cfg.Bridge.Addr,
			bridge.WithMetrics(metrics),
			bridge.WithSink(func(frameID string, msg player.Message) {
				if p != nil {
					p.Send(ui.FrameMsg{FrameID: frameID, Message: msg})
				}
			}),
		)
		opts = append(opts, ui.WithPage(srv))
	}

	model := ui.NewModel(cfg, ctrl, coord, opts...)
	p = tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	if srv != nil {
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("Player page unavailable")
			fmt.Printf("Error starting player page on %s: %v\n", cfg.Bridge.Addr, err)
			os.Exit(1)
		}
		log.WithField("url", srv.URL()).Info("Player page listening")
	}

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("Error running program")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info("UI exited normally")

	model.Shutdown()
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Player page did not shut down cleanly")
		}
		cancel()
	}
}

// loadConfig reads the config file, falling back to defaults when it is unusable
func loadConfig(configSvc config.ConfigService) *config.Config {
	cfg, err := configSvc.Load()
	if err == nil {
		return cfg
	}
	fmt.Fprintf(os.Stderr, "Could not load %s, using defaults: %v\n", configSvc.Path(), err)
	cfg = config.DefaultConfig()
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// setupLogging points logrus at the log file; the terminal belongs to the UI
func setupLogging(cfg config.LogConfig) *os.File {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	logFile, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(logFile)
	return logFile
}
