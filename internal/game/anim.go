package game

import "time"

// DefaultStepDuration 每走一格的动画时长
const DefaultStepDuration = 250 * time.Millisecond

// Commit 一次走子待提交的状态变更。动画播完之前不改动任何游戏状态。
type Commit struct {
	PieceID int
	Player  Player
	Path    []HexCoord
	CardID  string
}

// Final returns the destination hex of the commit.
func (c Commit) Final() HexCoord { return c.Path[len(c.Path)-1] }

// Animator 两态机：Idle 或 InFlight(path, segment, progress, pending)。
// 一旦开始必定播完，没有取消和暂停。
type Animator struct {
	stepDur time.Duration

	inFlight bool
	pending  Commit
	segment  int     // 当前正在走的段：Path[segment] → Path[segment+1]
	progress float64 // 当前段进度 0..1
}

// NewAnimator creates an idle animator. stepDur <= 0 uses
// DefaultStepDuration.
func NewAnimator(stepDur time.Duration) *Animator {
	if stepDur <= 0 {
		stepDur = DefaultStepDuration
	}
	return &Animator{stepDur: stepDur}
}

// Busy reports whether a path is in flight.
func (a *Animator) Busy() bool { return a.inFlight }

// Start 开始播放 c.Path。路径少于 2 格或已有动画在播时拒绝。
func (a *Animator) Start(c Commit) bool {
	if a.inFlight || len(c.Path) < 2 {
		return false
	}
	c.Path = append([]HexCoord(nil), c.Path...)
	a.pending = c
	a.inFlight = true
	a.segment = 0
	a.progress = 0
	return true
}

// Advance 推进 dt。最后一段播完时返回待提交的 Commit（只返回一次）并回到 Idle。
// 超出当前段的时间会继续计入后面的段。
func (a *Animator) Advance(dt time.Duration) (Commit, bool) {
	if !a.inFlight || dt <= 0 {
		return Commit{}, false
	}
	a.progress += float64(dt) / float64(a.stepDur)
	segments := len(a.pending.Path) - 1
	for a.progress >= 1 {
		a.progress -= 1
		a.segment++
		if a.segment >= segments {
			done := a.pending
			a.pending = Commit{}
			a.inFlight = false
			a.segment = 0
			a.progress = 0
			return done, true
		}
	}
	return Commit{}, false
}

// PieceID returns the id of the piece in flight.
func (a *Animator) PieceID() (int, bool) {
	if !a.inFlight {
		return 0, false
	}
	return a.pending.PieceID, true
}

// Position 返回运动中棋子的小数轴向坐标（当前段线性插值），供渲染使用
func (a *Animator) Position() (qf, rf float64, ok bool) {
	if !a.inFlight {
		return 0, 0, false
	}
	from := a.pending.Path[a.segment]
	to := a.pending.Path[a.segment+1]
	t := a.progress
	qf = float64(from.Q) + float64(to.Q-from.Q)*t
	rf = float64(from.R) + float64(to.R-from.R)*t
	return qf, rf, true
}

// Segment returns the index of the segment being played and its progress.
func (a *Animator) Segment() (int, float64) {
	return a.segment, a.progress
}
