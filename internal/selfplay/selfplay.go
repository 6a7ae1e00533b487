// Package selfplay plays random games headlessly to exercise the engine.
package selfplay

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"hexcards_go/internal/game"
	"hexcards_go/internal/mapfile"
)

// Header CSV 表头
var Header = []string{"game", "seed", "winner", "turns", "moves", "session"}

// Result 一局的结果
type Result struct {
	Game      int
	Seed      int64
	Winner    game.Player
	Turns     int
	Moves     int
	SessionID string
}

// Row formats r as a CSV record matching Header.
func (r Result) Row() []string {
	return []string{
		strconv.Itoa(r.Game),
		strconv.FormatInt(r.Seed, 10),
		strconv.Itoa(int(r.Winner)),
		strconv.Itoa(r.Turns),
		strconv.Itoa(r.Moves),
		r.SessionID,
	}
}

type move struct {
	piece int
	dest  game.HexCoord
}

// legalMoves 当前玩家所有 (棋子, 终点)，按棋子和终点顺序排列
func legalMoves(s *game.Session) []move {
	var out []move
	for _, p := range s.Pieces() {
		if p.Owner != s.CurrentPlayer() {
			continue
		}
		for _, dest := range s.Reachable(p.ID).Endpoints() {
			out = append(out, move{piece: p.ID, dest: dest})
		}
	}
	return out
}

// zeroSeed 代替 0 号种子：Session 把 0 当作“按时间取”，对局就无法复现
const zeroSeed int64 = -1

// Play 在 m 上随机对局：每回合不断随机走子直到无子可走，然后结束回合。
// 有人到达钻石或回合数超过 maxTurns 时停止。棋盘先复制一份，m 可以被多个
// goroutine 同时使用。seed 为 0 时改用 zeroSeed，Result.Seed 记录实际种子。
func Play(m *mapfile.Map, id int, seed int64, maxTurns int) Result {
	if seed == 0 {
		seed = zeroSeed
	}
	s := game.NewSession(m.Board.Clone(), m.Pieces, game.Options{Seed: seed})
	r := rand.New(rand.NewSource(seed))
	res := Result{Game: id, Seed: seed, SessionID: s.ID()}

	for s.Winner() == game.NoPlayer && s.Turn() <= maxTurns {
		moves := legalMoves(s)
		if len(moves) == 0 {
			s.EndTurn()
			continue
		}
		mv := moves[r.Intn(len(moves))]
		if s.SelectedPieceID() != mv.piece && !s.SelectPiece(mv.piece) {
			s.EndTurn()
			continue
		}
		if !s.TryMove(mv.dest) {
			s.EndTurn()
			continue
		}
		// 一次 Tick 足够播完任何路径
		if s.Tick(time.Hour) {
			res.Moves++
		}
	}
	res.Winner = s.Winner()
	res.Turns = s.Turn()
	return res
}

// Config 自对弈参数
type Config struct {
	Games    int
	Start    int // 从第几局开始（续跑时跳过已有的行）
	MaxTurns int
	Seed     int64 // 第 i 局用 Seed+i
	Workers  int   // <=0 按 CPU 数
}

// Run 用 worker 池并行跑 [cfg.Start, cfg.Games) 局，结果逐行写入 w。
// ctx 取消后不再投放新任务，已开始的对局会跑完。
func Run(ctx context.Context, m *mapfile.Map, cfg Config, w *csv.Writer) (int, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = max(1, runtime.NumCPU()/2)
	}
	log.Printf("CPU=%d，启动 %d 个 worker 并行自对弈", runtime.NumCPU(), workers)

	jobs := make(chan int, workers*2)
	var (
		wg      sync.WaitGroup
		wMu     sync.Mutex
		written int
		werr    error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				res := Play(m, id, cfg.Seed+int64(id), cfg.MaxTurns)

				wMu.Lock()
				if werr == nil {
					if err := w.Write(res.Row()); err != nil {
						werr = err
					}
					w.Flush()
					if err := w.Error(); err != nil && werr == nil {
						werr = err
					}
					written++
				}
				wMu.Unlock()
			}
		}()
	}

dispatch:
	for g := cfg.Start; g < cfg.Games; g++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- g:
		}
		if (g+1-cfg.Start)%100 == 0 {
			log.Printf("投放进度 %d/%d", g+1-cfg.Start, cfg.Games-cfg.Start)
		}
	}
	close(jobs)
	wg.Wait()
	if werr != nil {
		return written, fmt.Errorf("write csv: %w", werr)
	}
	return written, ctx.Err()
}

// Repair 检查 CSV 尾部：截掉不完整的行，必要时写表头，返回已完成的局数
func Repair(path string) (int, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, fmt.Errorf("repair open: %w", err)
	}
	defer f.Close()

	var offset int64
	rdr := bufio.NewReader(f)
	lines := 0
	for {
		line, err := rdr.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			if len(line) > 0 {
				log.Printf("检测到残缺行，已截断到 %d 字节 (完整 %d 行)", offset, lines)
			}
			break
		} else if err != nil {
			return 0, fmt.Errorf("read csv: %w", err)
		}
		if strings.Count(string(line), ",") != len(Header)-1 {
			log.Printf("检测到残缺行，已截断到 %d 字节 (完整 %d 行)", offset, lines)
			break
		}
		offset += int64(len(line))
		lines++
	}
	if err := f.Truncate(offset); err != nil {
		return 0, fmt.Errorf("truncate: %w", err)
	}
	if lines == 0 {
		if _, err := f.WriteAt([]byte(strings.Join(Header, ",")+"\n"), 0); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
		return 0, nil
	}
	return lines - 1, nil
}
