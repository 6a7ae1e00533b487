package game

import (
	"math/rand"
	"strconv"
)

// DefaultHandSize 每回合抽牌数，同时也是手牌上限
const DefaultHandSize = 3

// Card 卡牌：地形 + 步数。只能由 CardManager 创建，创建后不再修改。
type Card struct {
	ID      string
	Terrain Terrain
	Range   int
}

// Steps 返回实际可走步数，Range 小于 1 时按 1 处理
func (c Card) Steps() int {
	return max(1, c.Range)
}

func (c Card) String() string {
	return c.Terrain.String() + "/" + strconv.Itoa(c.Range)
}

// startingCards 起始牌组：2×草地2、2×草地1、2×沙地1、2×水域1
var startingCards = [...]struct {
	terrain Terrain
	rng     int
}{
	{Grass, 2}, {Grass, 2},
	{Grass, 1}, {Grass, 1},
	{Sand, 1}, {Sand, 1},
	{Water, 1}, {Water, 1},
}

// StartingDeckSize is the number of cards in a freshly built deck.
const StartingDeckSize = len(startingCards)

// PlayerCards 单个玩家的牌区。每张牌同一时刻只属于 Deck、Hand、Discard 之一。
type PlayerCards struct {
	Deck     []Card // 从尾部抽
	Hand     []Card
	Discard  []Card
	Selected string // 选中的卡 ID，空串表示未选
}

func (pc *PlayerCards) handIndex(id string) int {
	for i, c := range pc.Hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// CardManager 管理两名玩家的牌组、手牌、弃牌与选牌
type CardManager struct {
	rng      *rand.Rand
	nextID   int
	handSize int
	players  map[Player]*PlayerCards
}

// NewCardManager creates a manager drawing randomness from rng. A nil rng
// uses a fixed seed.
func NewCardManager(rng *rand.Rand, handSize int) *CardManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if handSize < 1 {
		handSize = DefaultHandSize
	}
	return &CardManager{
		rng:      rng,
		handSize: handSize,
		players:  make(map[Player]*PlayerCards),
	}
}

// HandSize returns the per-turn draw count and hand cap.
func (m *CardManager) HandSize() int { return m.handSize }

// BuildStartingDeck 生成一副新的起始牌组（新 ID），并做 Fisher–Yates 洗牌
func (m *CardManager) BuildStartingDeck() []Card {
	deck := make([]Card, 0, len(startingCards))
	for _, sc := range startingCards {
		m.nextID++
		deck = append(deck, Card{
			ID:      "c" + strconv.Itoa(m.nextID),
			Terrain: sc.terrain,
			Range:   sc.rng,
		})
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := m.rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// Ensure 懒创建玩家牌区，重复调用无副作用
func (m *CardManager) Ensure(p Player) *PlayerCards {
	if pc, ok := m.players[p]; ok {
		return pc
	}
	pc := &PlayerCards{Deck: m.BuildStartingDeck()}
	m.players[p] = pc
	return pc
}

// Player returns p's card state, if it has been created.
func (m *CardManager) Player(p Player) (*PlayerCards, bool) {
	pc, ok := m.players[p]
	return pc, ok
}

// Draw 从牌组尾部抽最多 n 张到手牌，手牌达到上限即停止。
// 牌组抽空时整副替换为新洗好的起始牌组（弃牌堆不回收）。
func (m *CardManager) Draw(p Player, n int) []Card {
	pc, ok := m.players[p]
	if !ok {
		return nil
	}
	var drawn []Card
	for i := 0; i < n && len(pc.Hand) < m.handSize; i++ {
		if len(pc.Deck) == 0 {
			pc.Deck = m.BuildStartingDeck()
		}
		last := len(pc.Deck) - 1
		c := pc.Deck[last]
		pc.Deck = pc.Deck[:last]
		pc.Hand = append(pc.Hand, c)
		drawn = append(drawn, c)
	}
	return drawn
}

// Select 切换选牌：再次选中同一张即取消。不在手牌里的 ID 忽略。
func (m *CardManager) Select(p Player, id string) {
	pc, ok := m.players[p]
	if !ok {
		return
	}
	if pc.Selected == id {
		pc.Selected = ""
		return
	}
	if pc.handIndex(id) < 0 {
		return
	}
	pc.Selected = id
}

// SelectedCard returns the selected hand card of p.
func (m *CardManager) SelectedCard(p Player) (Card, bool) {
	pc, ok := m.players[p]
	if !ok || pc.Selected == "" {
		return Card{}, false
	}
	if i := pc.handIndex(pc.Selected); i >= 0 {
		return pc.Hand[i], true
	}
	return Card{}, false
}

// Consume 手牌 → 弃牌堆；若该卡被选中则清除选中。不在手牌中则什么都不做。
func (m *CardManager) Consume(p Player, id string) bool {
	pc, ok := m.players[p]
	if !ok {
		return false
	}
	i := pc.handIndex(id)
	if i < 0 {
		return false
	}
	c := pc.Hand[i]
	pc.Hand = append(pc.Hand[:i], pc.Hand[i+1:]...)
	pc.Discard = append(pc.Discard, c)
	if pc.Selected == id {
		pc.Selected = ""
	}
	return true
}

// CanEnter 判断 p 当前的手牌/选牌能否进入地形 t
func (m *CardManager) CanEnter(p Player, t Terrain) bool {
	pc, ok := m.players[p]
	if !ok {
		return false
	}
	if !t.Enterable() {
		return false
	}
	if pc.Selected != "" {
		i := pc.handIndex(pc.Selected)
		return i >= 0 && pc.Hand[i].Terrain == t
	}
	for _, c := range pc.Hand {
		if c.Terrain == t {
			return true
		}
	}
	return false
}

// ResetHand 回合开始时清空手牌与选牌（不进弃牌堆）
func (m *CardManager) ResetHand(p Player) {
	if pc, ok := m.players[p]; ok {
		pc.Hand = nil
		pc.Selected = ""
	}
}

// FlushHand 回合结束：剩余手牌全部进弃牌堆
func (m *CardManager) FlushHand(p Player) {
	if pc, ok := m.players[p]; ok {
		pc.Discard = append(pc.Discard, pc.Hand...)
		pc.Hand = nil
		pc.Selected = ""
	}
}

// ClearSelection drops p's card selection.
func (m *CardManager) ClearSelection(p Player) {
	if pc, ok := m.players[p]; ok {
		pc.Selected = ""
	}
}

// Hand returns a copy of p's hand.
func (m *CardManager) Hand(p Player) []Card {
	pc, ok := m.players[p]
	if !ok {
		return nil
	}
	return append([]Card(nil), pc.Hand...)
}

// Discard returns a copy of p's discard pile.
func (m *CardManager) Discard(p Player) []Card {
	pc, ok := m.players[p]
	if !ok {
		return nil
	}
	return append([]Card(nil), pc.Discard...)
}

// HandEmpty is true when p has no cards in hand (or no state at all).
func (m *CardManager) HandEmpty(p Player) bool {
	pc, ok := m.players[p]
	return !ok || len(pc.Hand) == 0
}

// candidates 搜索用的候选卡：有选牌只用选中的那张，否则整手
func (m *CardManager) candidates(p Player) []Card {
	pc, ok := m.players[p]
	if !ok {
		return nil
	}
	if pc.Selected != "" {
		if i := pc.handIndex(pc.Selected); i >= 0 {
			return []Card{pc.Hand[i]}
		}
	}
	return append([]Card(nil), pc.Hand...)
}
