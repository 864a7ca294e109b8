package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/controller"
	"github.com/pensteer/pensteer/pkg/state"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file (default: the user config dir)")
		sourceKind  = flag.String("source", "", "pen source backend: none, net, ws or evdev")
		deviceKind  = flag.String("device", "", "virtual device backend: none or uinput")
		writeConfig = flag.Bool("write-config", false, "write the effective config to disk and exit")
		debug       = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, path := loadConfig(*configPath)
	if *sourceKind != "" {
		cfg.Source = config.SourceKind(*sourceKind)
	}
	if *deviceKind != "" {
		cfg.Device = config.DeviceKind(*deviceKind)
	}

	if *writeConfig {
		if err := cfg.Save(path); err != nil {
			log.Fatal().Err(err).Msg("Writing config")
		}
		log.Info().Str("path", path).Msg("Config written")
		return
	}

	st := state.New(cfg)
	go controller.New(st).Run()

	// Hook Ctrl-C etc.
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

	status := time.NewTicker(time.Second)
	defer status.Stop()

	for {
		select {
		case s := <-signals:
			log.Info().Stringer("signal", s).Msg("Shutting down")
			st.Shutdown()
			return
		case <-status.C:
			if err := st.TakeError(); err != nil {
				log.Warn().Err(err).Msg("Controller reported an error")
			}
			snap := st.Snapshot()
			log.Debug().
				Float32("angle", snap.Angle).
				Float32("velocity", snap.Velocity).
				Float32("feedback", snap.FeedbackTorque).
				Bool("honking", snap.Honking).
				Bool("dragging", snap.Dragging).
				Bool("source", snap.SourceActive).
				Bool("device", snap.DeviceActive).
				Msg("Status")
		}
	}
}

// loadConfig reads the config file if it exists.  A missing file is not an
// error; it just means defaults.
func loadConfig(path string) (config.Config, string) {
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			log.Fatal().Err(err).Msg("Locating config file")
		}
	}
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		log.Info().Str("path", path).Msg("Loaded config")
	case os.IsNotExist(errors.Cause(err)):
		log.Info().Str("path", path).Msg("No config file, using defaults")
	default:
		log.Fatal().Err(err).Msg("Loading config")
	}
	return cfg, path
}
