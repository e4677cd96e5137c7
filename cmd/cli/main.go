package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/cricklet/dobutsugo/internal/config"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/protocol"
	"github.com/cricklet/dobutsugo/internal/runner"
	"github.com/cricklet/dobutsugo/internal/shards"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	cfg, _, err := config.Load("cli", os.Args[1:])
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	SetupLogger(cfg.Debug(), os.Stderr)

	if cfg.Profile() {
		p := profile.Start(profile.ProfilePath("."), profile.Quiet)
		defer p.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cache := shards.NewCache(shards.NewSource(cfg.TablebaseURL(), cfg.TablebaseDir()))
	r := protocol.NewLineRunner(runner.NewTablebaseRunner(cache))
	r.Unicode = cfg.Color() && term.IsTerminal(int(os.Stdout.Fd()))

	log.Debug().Str("tablebase", cache.Source().String()).Msg("ready")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := r.HandleInputContext(ctx, input)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}

	log.Debug().Stringer("cache", cache.Stats()).Msg("done")
}
