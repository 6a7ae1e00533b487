package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v3"

	"hexcards_go/internal/mapfile"
	"hexcards_go/internal/selfplay"
)

func main() {
	cmd := &cli.Command{
		Name:  "selfplay",
		Usage: "play random games headlessly and append the outcomes to a CSV",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "n", Value: 1000, Usage: "目标总对局数"},
			&cli.StringFlag{Name: "out", Value: "selfplay.csv", Usage: "CSV 文件"},
			&cli.IntFlag{Name: "max-turns", Value: 200, Usage: "单局回合上限"},
			&cli.StringFlag{Name: "map", Usage: "地图文件，留空使用内置地图", Sources: cli.EnvVars("HEXCARDS_MAP")},
			&cli.Int64Flag{Name: "seed", Usage: "第 i 局使用 seed+i，0 表示按时间取"},
			&cli.IntFlag{Name: "workers", Usage: "并行 worker 数，0 按 CPU 数"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	m, err := mapfile.Open(cmd.String("map"))
	if err != nil {
		return err
	}
	seed := cmd.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out := cmd.String("out")

	// ───── 修复 CSV ─────
	done, err := selfplay.Repair(out)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(out, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	log.Printf("map %s, seed %d, resuming at game %d", m.Summary(), seed, done)
	start := time.Now()
	n, err := selfplay.Run(ctx, m, selfplay.Config{
		Games:    cmd.Int("n"),
		Start:    done,
		MaxTurns: cmd.Int("max-turns"),
		Seed:     seed,
		Workers:  cmd.Int("workers"),
	}, csv.NewWriter(f))
	log.Printf("%d games in %s", n, time.Since(start).Round(time.Millisecond))
	return err
}
