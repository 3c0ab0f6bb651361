package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todocal/internal/app"
	"todocal/internal/clock"
	"todocal/internal/config"
	appLog "todocal/internal/log"
	"todocal/internal/store"
	"todocal/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	debug      bool
}

func main() {
	appLog.Info("todocal starting", "version", "0.1.0")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		if conf == nil {
			appLog.Error("failed to load config", err, "config_path", flags.configPath)
			os.Exit(1)
		}
		appLog.Warn("could not write default config, continuing with defaults", "config_path", flags.configPath, "err", err)
	}

	// CLI flags override the config file.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.debug {
		conf.LogLevel = "debug"
	}
	if lvl, err := appLog.ParseLevel(conf.LogLevel); err == nil {
		appLog.SetLevel(lvl)
	} else {
		appLog.Warn("unknown log level, using info", "log_level", conf.LogLevel)
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"log_level", conf.LogLevel,
		"default_view", conf.DefaultView,
		"clock_refresh", conf.ClockRefresh,
		"calendar_name", conf.CalendarName,
		"basic_auth", conf.BasicAuth != nil,
	)

	clk, err := clock.New(conf.ClockRefresh, nil)
	if err != nil {
		appLog.Error("failed to start clock", err, "clock_refresh", conf.ClockRefresh)
		os.Exit(1)
	}

	ctrl := app.New(store.New(), conf.View(), clk.Now(), nil)
	clk.OnTick(ctrl.Tick)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go clk.Run(ctx)

	if err := web.Serve(ctx, conf, ctrl); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server failed", err, "listen", conf.Listen)
		os.Exit(1)
	}
	appLog.Info("todocal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/todocal/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
