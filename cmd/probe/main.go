package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"github.com/cricklet/dobutsugo/internal/config"
	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/game"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/shards"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

const usage = `usage:
  probe [flags] <board> <player> <hands>   look up the best action for a position
  probe [flags] startpos                   look up the initial position
  probe [flags] prefetch <from> <to>       download shards in [from, to)
  probe [flags] build <records> <dir> [n]  shard a solved record file into a local mirror`

const defaultPositionsPerShard = 1000

func probe(ctx context.Context, cache *shards.Cache, positionString string, out io.Writer) Error {
	if positionString == "startpos" {
		positionString = InitialPositionString
	}
	g, err := GameStateFromPositionString(positionString)
	if !IsNil(err) {
		return err
	}
	f := Compress(g)

	fmt.Fprintln(out, g.String())
	fmt.Fprintln(out, "fingerprint:", uint64(f), f.String())

	index, err := cache.ShardIndexFor(ctx, f)
	if err.HasError() && !IsTerminal(g) {
		fmt.Fprintln(out, "shard: (none)", err)
	} else if !err.HasError() {
		fmt.Fprintln(out, "shard:", index, tablebase.ShardPath(index))
	}

	if IsTerminal(g) {
		fmt.Fprintln(out, "winner:", Winner(g).Value())
		return NilError
	}

	action, score, err := shards.Lookup(ctx, cache, g)
	if !IsNil(err) {
		return err
	}
	if action.IsEmpty() {
		fmt.Fprintln(out, "best action: (none)")
		return NilError
	}
	fmt.Fprintf(out, "best action: %v (%v)\n", action.Value(), score)
	return NilError
}

func prefetch(ctx context.Context, cache *shards.Cache, args []string, workers int, progress io.Writer) Error {
	if len(args) != 2 {
		return Errorf("prefetch takes <from> <to>, got %v", args)
	}
	from, err := WrapReturn(strconv.Atoi(args[0]))
	if !IsNil(err) {
		return err
	}
	to, err := WrapReturn(strconv.Atoi(args[1]))
	if !IsNil(err) {
		return err
	}
	if to < from {
		return Errorf("empty range [%v, %v)", from, to)
	}

	indices := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		indices = append(indices, i)
	}

	bar := progressbar.NewOptions(len(indices),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("shards"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish())

	err = cache.Prefetch(ctx, indices, workers, func(index int) {
		if barErr := bar.Add(1); barErr != nil {
			log.Warn().Err(barErr).Int("shard", index).Msg("progress bar")
		}
	})
	if barErr := bar.Finish(); barErr != nil {
		log.Warn().Err(barErr).Msg("progress bar")
	}
	return err
}

func build(args []string, out io.Writer) Error {
	if len(args) != 2 && len(args) != 3 {
		return Errorf("build takes <records> <dir> [positions per shard], got %v", args)
	}
	perShard := defaultPositionsPerShard
	if len(args) == 3 {
		n, err := WrapReturn(strconv.Atoi(args[2]))
		if !IsNil(err) {
			return err
		}
		perShard = n
	}

	b, err := WrapReturn(os.ReadFile(args[0]))
	if !IsNil(err) {
		return err
	}
	records, err := tablebase.DecodeRecords(b)
	if !IsNil(err) {
		return err
	}

	boundaries, shardBytes, err := tablebase.Build(records, perShard)
	if !IsNil(err) {
		return err
	}
	err = shards.WriteMirror(args[1], boundaries, shardBytes)
	if !IsNil(err) {
		return err
	}

	size := lo.SumBy(shardBytes, func(shard []byte) int {
		return len(shard)
	})
	fmt.Fprintf(out, "wrote %v records into %v shards (%v) under %v\n",
		humanize.Comma(int64(len(records))), len(shardBytes), humanize.Bytes(uint64(size)), args[1])
	return NilError
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer, progress io.Writer) Error {
	if len(args) == 0 {
		return Errorf("%v", usage)
	}
	if args[0] == "build" {
		return build(args[1:], out)
	}

	cache := shards.NewCache(shards.NewSource(cfg.TablebaseURL(), cfg.TablebaseDir()))
	log.Debug().Str("tablebase", cache.Source().String()).Msg("probing")

	var err Error
	if args[0] == "prefetch" {
		err = prefetch(ctx, cache, args[1:], cfg.PrefetchWorkers(), progress)
	} else {
		err = probe(ctx, cache, strings.Join(args, " "), out)
	}

	fmt.Fprintln(out, cache.Stats())
	return err
}

func main() {
	cfg, args, err := config.Load("probe", os.Args[1:])
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	SetupLogger(cfg.Debug(), os.Stderr)

	err = run(context.Background(), cfg, args, os.Stdout, os.Stderr)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
