package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/deevus/matchday-tui/app"
	"github.com/deevus/matchday-tui/config"
	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/gateway"
	"github.com/deevus/matchday-tui/internal"
	"github.com/deevus/matchday-tui/livefeed"
	"github.com/deevus/matchday-tui/store"
)

func main() {
	serverFlag := flag.String("server", "", "server profile name from config")
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	matchFlag := flag.String("match", "", "match id to open")
	tabFlag := flag.String("tab", string(coordinator.TabPower), "initial tab (events, lineups, stats, standings, power, support)")
	logFlag := flag.String("log", filepath.Join(config.StateDir(), "matchday.log"), "log file path")
	sessionFlag := flag.String("session", "", "reuse a persisted cache session (sqlite store only)")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *matchFlag == "" {
		fmt.Fprintf(os.Stderr, "Error: --match is required\n")
		os.Exit(1)
	}
	tab, err := coordinator.ParseTab(*tabFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	serverName := *serverFlag
	if serverName == "" {
		names := cfg.ServerNames()
		if len(names) == 1 {
			serverName = names[0]
		} else {
			fmt.Fprintf(os.Stderr, "Multiple servers configured. Use --server flag.\nAvailable: %v\n", names)
			os.Exit(1)
		}
	}

	serverCfg, ok := cfg.Servers[serverName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: server %q not found in config\n", serverName)
		os.Exit(1)
	}

	logger, err := newLogger(*logFlag, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("server", serverName), zap.String("match", *matchFlag))

	var svc *internal.Services
	connect := func(ctx context.Context) (*internal.Services, error) {
		gw, err := gateway.NewHTTP(gateway.HTTPParams{
			BaseURL:            serverCfg.BaseURL,
			APIKey:             serverCfg.APIKey,
			InsecureSkipVerify: serverCfg.InsecureSkipVerify,
			Timeout:            serverCfg.Timeout.Duration,
			Logger:             logger,
		})
		if err != nil {
			return nil, err
		}

		var feed internal.Feed
		if serverCfg.LiveURL != "" {
			f, err := livefeed.New(livefeed.Params{
				URL:                serverCfg.LiveURL,
				APIKey:             serverCfg.APIKey,
				InsecureSkipVerify: serverCfg.InsecureSkipVerify,
				Logger:             logger,
			})
			if err != nil {
				return nil, err
			}
			feed = f
		}

		st, err := openStore(cfg.Cache, *sessionFlag, logger)
		if err != nil {
			return nil, err
		}
		svc = internal.NewServices(gw, feed, st)
		return svc, nil
	}

	root := app.New(app.Params{
		ServerName:   serverName,
		MatchID:      *matchFlag,
		InitialTab:   tab,
		Policy:       cfg.Cache.Policy(),
		FetchTimeout: serverCfg.Timeout.Duration,
		Logger:       logger,
		Connect:      connect,
	})

	vxApp, err := vxfw.NewApp(vaxis.Options{})
	if err != nil {
		logger.Fatal("creating terminal app", zap.Error(err))
	}
	root.SetPostEvent(vxApp.PostEvent)

	runErr := vxApp.Run(root)
	root.Close()
	if svc != nil {
		if err := svc.Close(); err != nil {
			logger.Warn("closing services", zap.Error(err))
		}
	}
	if runErr != nil {
		logger.Fatal("running app", zap.Error(runErr))
	}
}

// newLogger writes JSON logs to path; the terminal belongs to the UI.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func openStore(c config.CacheConfig, session string, logger *zap.Logger) (store.Store, error) {
	if c.Store != config.StoreSQLite {
		return store.NewMemory(), nil
	}
	st, err := store.OpenSQLite(store.SQLiteParams{Path: c.StorePath, SessionID: session, Logger: logger})
	if err != nil {
		return nil, err
	}
	logger.Debug("opened cache store", zap.String("path", c.StorePath), zap.String("session", st.SessionID()))
	return st, nil
}
