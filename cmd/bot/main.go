package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/bot"
)

func main() {
	url := flag.String("url", "http://localhost:8009", "server base URL")
	strategyName := flag.String("strategy", bot.DifficultyHunt, "bot strategy (random, hunt)")
	difficulty := flag.String("difficulty", bot.DifficultyHunt, "server AI difficulty")
	size := flag.Int("size", 10, "board size")
	games := flag.Int("games", 1, "number of games to play")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Received shutdown signal")
		cancel()
	}()

	wins := 0
	for i := range *games {
		// The learning table lives on the server, so the client has no bias.
		player := bot.NewRemotePlayer(*url, bot.StrategyForDifficulty(*strategyName, nil))
		res, err := player.Play(ctx, *size, *difficulty)
		if err != nil {
			log.Fatal().Err(err).Int("game", i+1).Msg("Bot game failed")
		}
		if res.Winner == "player" {
			wins++
		}
		log.Info().Int("game", i+1).Str("gameId", res.GameID).Str("winner", string(res.Winner)).Bool("aborted", res.Aborted).Int("shots", res.Shots).Msg("Bot game completed")
	}
	log.Info().Int("games", *games).Int("wins", wins).Msg("Bot run finished")
}
