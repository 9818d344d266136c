package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cardroom/holdem/config"
	"github.com/cardroom/holdem/server"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger().Level(level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	srv := server.New(cfg)

	go func() {
		if err := srv.ListenAndServeWS(); err != nil {
			log.Error().Err(err).Msg("websocket server stopped")
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("tcp server stopped")
	}
}
