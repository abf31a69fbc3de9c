package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/decred/slog"

	"github.com/cardroom/tabled/pkg/server"
)

func main() {
	envFile := flag.String("envfile", "", "env file with pacing overrides")
	debugLevel := flag.String("debuglevel", "info", "log level (trace, debug, info, warn, error, critical)")
	flag.Parse()

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("SRVR")
	level, ok := slog.LevelFromString(*debugLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid debug level %q\n", *debugLevel)
		os.Exit(1)
	}
	log.SetLevel(level)

	cfg, err := server.LoadConfig(*envFile)
	if err != nil {
		log.Errorf("loading config: %v", err)
		os.Exit(1)
	}

	registry, err := server.NewRegistry(cfg, log)
	if err != nil {
		log.Errorf("starting registry: %v", err)
		os.Exit(1)
	}

	// The transport layer subscribes here; until one is attached, log the
	// stream so hands can be followed from the console.
	go func() {
		for cmd := range registry.Commands() {
			if cmd.Recipient != "" {
				log.Debugf("-> %s [%s, to %s]", cmd.Name, cmd.Table, cmd.Recipient)
				continue
			}
			log.Infof("-> %s [%s]", cmd.Name, cmd.Table)
		}
	}()

	log.Infof("table engine up, end-game delay %v, next-game delay %v",
		cfg.EndGameDelay, cfg.NextGameDelay)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Infof("shutting down")
	registry.Close()
}
