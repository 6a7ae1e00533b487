package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/urfave/cli/v3"

	"hexcards_go/internal/assets"
	"hexcards_go/internal/config"
	"hexcards_go/internal/game"
	"hexcards_go/internal/mapfile"
	"hexcards_go/internal/ui"
)

func main() {
	cmd := &cli.Command{
		Name:  "hexcards",
		Usage: "two-player hex board game driven by terrain cards",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "map", Usage: "map file (.json/.yaml), empty for the built-in map"},
			&cli.StringFlag{Name: "assets", Usage: "directory with images/ and audio/"},
			&cli.Int64Flag{Name: "seed", Usage: "card shuffle seed, 0 for time based"},
			&cli.IntFlag{Name: "hand-size", Usage: "cards drawn per turn"},
			&cli.BoolFlag{Name: "auto-end-turn", Usage: "end the turn when the hand is empty"},
			&cli.BoolFlag{Name: "mute", Usage: "disable sound"},
			&cli.BoolFlag{Name: "debug", Usage: "verbose logging and on-screen debug info"},
		},
		Action: play,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "load a map and print its summary",
				ArgsUsage: "<map>",
				Action:    check,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig 环境变量/.env 打底，命令行显式给出的参数覆盖
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if cmd.IsSet("map") {
		cfg.MapPath = cmd.String("map")
	}
	if cmd.IsSet("assets") {
		cfg.AssetsDir = cmd.String("assets")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("hand-size") {
		cfg.HandSize = cmd.Int("hand-size")
	}
	if cmd.IsSet("auto-end-turn") {
		cfg.AutoEndTurn = cmd.Bool("auto-end-turn")
	}
	if cmd.IsSet("mute") {
		cfg.Mute = cmd.Bool("mute")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	return cfg, cfg.Validate()
}

func play(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	m, err := mapfile.Open(cfg.MapPath)
	if err != nil {
		return err
	}
	log.Printf("map %s", m.Summary())

	opts := ui.Options{
		Map: m,
		Session: game.Options{
			Seed:         cfg.Seed,
			HandSize:     cfg.HandSize,
			StepDuration: cfg.StepDuration,
			AutoEndTurn:  cfg.AutoEndTurn,
		},
		Width:     cfg.WindowWidth,
		Height:    cfg.WindowHeight,
		TPS:       cfg.TPS,
		Tick:      cfg.TickDuration(),
		AssetsDir: cfg.AssetsDir,
		Mute:      cfg.Mute,
		Debug:     cfg.Debug,
	}
	if cfg.Debug {
		opts.Session.Logger = log.Default()
	}
	if !cfg.Mute {
		opts.Audio = audio.NewContext(assets.SampleRate)
	}

	screen, err := ui.NewScreen(opts)
	if err != nil {
		return err
	}
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Hex Cards - " + m.Name)
	return ebiten.RunGame(screen)
}

// check 打印地图摘要和玩家一开局的合法走法数
func check(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("check: missing map path")
	}
	m, err := mapfile.Load(path)
	if err != nil {
		return err
	}
	s := game.NewSession(m.Board, m.Pieces, game.Options{Seed: cmd.Int64("seed")})
	moves := 0
	for _, p := range s.Pieces() {
		if p.Owner == game.Player1 {
			moves += len(s.Reachable(p.ID))
		}
	}
	fmt.Println(m.Summary())
	fmt.Printf("player 1 opens with %v and has %d legal moves\n", s.Hand(game.Player1), moves)
	return nil
}
