package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

// Config is the engine construction configuration.
type Config struct {
	MaxPlayers int
	SmallBlind int
	BigBlind   int
	Ante       int
	// Structure is "no-limit", "pot-limit" or "fixed-limit"; empty picks
	// the variant's default.
	Structure string
	Seed      int64
}

func (c Config) validate() error {
	if c.MaxPlayers < 2 || c.MaxPlayers > 10 {
		return fmt.Errorf("%w: max players %d outside 2-10", ErrInvalidArgument, c.MaxPlayers)
	}
	if c.SmallBlind < 0 || c.BigBlind <= 0 || c.Ante < 0 {
		return fmt.Errorf("%w: blinds %d/%d ante %d", ErrInvalidArgument, c.SmallBlind, c.BigBlind, c.Ante)
	}
	return nil
}

// Phase is the engine's coarse position within a hand.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseBetting
	PhaseDrawing
)

// Game is one table running one variant. It is a single-threaded
// cooperative state machine: the host calls in with actions and the engine
// returns between them, never blocking and never spawning goroutines.
type Game struct {
	cfg       Config
	structure Structure
	variant   Variant
	logger    *log.Logger
	rng       *rand.Rand

	deck    *poker.Deck
	players []*Player
	button  int

	handSeq  uint64
	inHand   bool
	phase    Phase
	round    int
	board    []poker.Card
	betting  BettingState
	actionOn int

	scratch any

	history   *HistoryLog
	record    *HandRecord
	observers []Observer

	stackedDeck bool
	chipFloat   int // Σ stacks at hand start, for conservation checks
}

// Option customises game construction.
type Option func(*Game)

// WithDeck substitutes a prepared deck and suppresses shuffling, for
// deterministic tests.
func WithDeck(d *poker.Deck) Option {
	return func(g *Game) {
		g.deck = d
		g.stackedDeck = true
	}
}

// WithClock injects the clock used for hand-history timestamps.
func WithClock(c quartz.Clock) Option {
	return func(g *Game) {
		g.history = NewHistoryLog(c)
	}
}

// WithObserver registers an event observer at construction.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observers = append(g.observers, o)
	}
}

// New creates a game for the given variant. The configured seed drives all
// shuffles, so identical seeds replay identical decks.
func New(variant Variant, cfg Config, logger *log.Logger, opts ...Option) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	structure := variant.DefaultStructure()
	if cfg.Structure != "" {
		var err error
		structure, err = ParseStructure(cfg.Structure)
		if err != nil {
			return nil, err
		}
	}

	g := &Game{
		cfg:       cfg,
		structure: structure,
		variant:   variant,
		logger:    logger.WithPrefix(variant.Code()),
		rng:       randutil.New(cfg.Seed),
		players:   make([]*Player, cfg.MaxPlayers),
		button:    cfg.MaxPlayers - 1,
		actionOn:  -1,
		betting:   newBettingState(cfg.MaxPlayers),
	}
	for i := range g.players {
		g.players[i] = &Player{Seat: i}
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.deck == nil {
		g.deck = poker.NewDeck(g.rng)
	}
	if g.history == nil {
		g.history = NewHistoryLog(nil)
	}
	variant.Init(g)
	return g, nil
}

// Accessors used by variants and hosts.

func (g *Game) Config() Config            { return g.cfg }
func (g *Game) Structure() Structure      { return g.structure }
func (g *Game) Variant() Variant          { return g.variant }
func (g *Game) Deck() *poker.Deck         { return g.deck }
func (g *Game) Board() []poker.Card       { return g.board }
func (g *Game) Players() []*Player        { return g.players }
func (g *Game) Button() int               { return g.button }
func (g *Game) Round() int                { return g.round }
func (g *Game) Phase() Phase              { return g.phase }
func (g *Game) InHand() bool              { return g.inHand }
func (g *Game) ActionOn() int             { return g.actionOn }
func (g *Game) Betting() *BettingState    { return &g.betting }
func (g *Game) History() *HistoryLog      { return g.history }
func (g *Game) HandID() uint64            { return g.handSeq }
func (g *Game) Logger() *log.Logger       { return g.logger }
func (g *Game) Scratch() any              { return g.scratch }
func (g *Game) SetScratch(v any)          { g.scratch = v }
func (g *Game) SetActionOn(seat int)      { g.actionOn = seat }

// PlayerAt returns the player at a seat.
func (g *Game) PlayerAt(seat int) (*Player, error) {
	if seat < 0 || seat >= len(g.players) {
		return nil, fmt.Errorf("%w: seat %d outside 0-%d", ErrInvalidArgument, seat, len(g.players)-1)
	}
	return g.players[seat], nil
}

// AddObserver registers an event observer.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

func (g *Game) emit(e Event) {
	for _, o := range g.observers {
		o.OnEvent(e)
	}
}

// PotTotal is all chips committed this hand, current-round bets included.
func (g *Game) PotTotal() int {
	return PotTotal(g.players)
}

// CountInHand counts seats still holding a claim on the pot.
func (g *Game) CountInHand() int {
	n := 0
	for _, p := range g.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// NextOccupiedSeat returns the first occupied seat strictly clockwise of
// from, or -1.
func (g *Game) NextOccupiedSeat(from int) int {
	return g.nextSeat(from, func(p *Player) bool { return p.Occupied() && p.State != SittingOut })
}

// NextActiveSeat returns the first seat that can act strictly clockwise of
// from, or -1.
func (g *Game) NextActiveSeat(from int) int {
	return g.nextSeat(from, (*Player).CanAct)
}

// NextInHandSeat returns the first in-hand seat strictly clockwise of
// from, or -1.
func (g *Game) NextInHandSeat(from int) int {
	return g.nextSeat(from, (*Player).InHand)
}

func (g *Game) nextSeat(from int, pred func(*Player) bool) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if pred(g.players[seat]) {
			return seat
		}
	}
	return -1
}

// Seating.

// Seat puts a named player with a starting stack into an empty seat.
// Seating changes are only allowed between hands.
func (g *Game) Seat(seat int, name string, stack int) error {
	if g.inHand {
		return fmt.Errorf("%w: cannot seat players mid-hand", ErrInvalidState)
	}
	p, err := g.PlayerAt(seat)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: empty player name", ErrInvalidArgument)
	}
	if stack <= 0 {
		return fmt.Errorf("%w: stack %d", ErrInvalidArgument, stack)
	}
	if p.Occupied() {
		return fmt.Errorf("%w: seat %d is taken", ErrInvalidState, seat)
	}
	*p = Player{Seat: seat, Name: name, Stack: stack, State: Active}
	return nil
}

// Leave empties a seat between hands.
func (g *Game) Leave(seat int) error {
	if g.inHand {
		return fmt.Errorf("%w: cannot leave mid-hand", ErrInvalidState)
	}
	p, err := g.PlayerAt(seat)
	if err != nil {
		return err
	}
	*p = Player{Seat: seat}
	return nil
}

// SitOut marks a seat as not being dealt in. Takes effect next hand.
func (g *Game) SitOut(seat int) error {
	p, err := g.PlayerAt(seat)
	if err != nil {
		return err
	}
	if !p.Occupied() {
		return fmt.Errorf("%w: seat %d is empty", ErrInvalidState, seat)
	}
	if g.inHand && p.InHand() {
		return fmt.Errorf("%w: cannot sit out mid-hand", ErrInvalidState)
	}
	p.State = SittingOut
	return nil
}

// SitIn returns a sitting-out seat to play.
func (g *Game) SitIn(seat int) error {
	p, err := g.PlayerAt(seat)
	if err != nil {
		return err
	}
	if p.State != SittingOut {
		return fmt.Errorf("%w: seat %d is not sitting out", ErrInvalidState, seat)
	}
	if p.Stack == 0 {
		return fmt.Errorf("%w: seat %d has no chips", ErrInvalidState, seat)
	}
	p.State = Active
	return nil
}

// Hand lifecycle.

// StartHand advances the button, delegates dealing to the variant and
// opens the first betting round.
func (g *Game) StartHand() error {
	if g.inHand {
		return fmt.Errorf("%w: hand already in progress", ErrInvalidState)
	}
	ready := 0
	for _, p := range g.players {
		p.resetForHand()
		if p.CanAct() {
			ready++
		}
	}
	if ready < 2 {
		return fmt.Errorf("%w: need at least 2 players with chips", ErrInvalidState)
	}

	g.handSeq++
	g.inHand = true
	g.round = 0
	g.board = g.board[:0]
	g.button = g.NextOccupiedSeat(g.button)
	g.chipFloat = 0
	for _, p := range g.players {
		g.chipFloat += p.Stack
	}

	g.record = g.history.Begin(g.handSeq, g.variant.Code(), Stakes{
		SmallBlind: g.cfg.SmallBlind,
		BigBlind:   g.cfg.BigBlind,
		Ante:       g.cfg.Ante,
		Structure:  g.structure,
	}, g.button, g.players)

	g.logger.Debug("hand started", "hand", g.handSeq, "button", g.button, "players", ready)
	g.emit(HandStarted{HandID: g.handSeq, Variant: g.variant.Code(), Button: g.button})

	if err := g.variant.StartHand(g); err != nil {
		return g.abort(err)
	}
	if err := g.variant.DealInitial(g); err != nil {
		return g.abort(err)
	}
	g.phase = PhaseBetting
	if err := g.variant.StartBettingRound(g, 0); err != nil {
		return g.abort(err)
	}
	if g.variant.BettingComplete(g) {
		return g.finishRound()
	}
	return nil
}

// abort tears down a hand that died to a dealing failure.
func (g *Game) abort(err error) error {
	g.inHand = false
	g.phase = PhaseIdle
	g.scratch = nil
	return fmt.Errorf("hand %d aborted: %w", g.handSeq, err)
}

// ResetDeckForHand reshuffles for a new hand unless a stacked deck was
// injected for testing.
func (g *Game) ResetDeckForHand() {
	if g.stackedDeck {
		return
	}
	g.deck.Reset()
	g.deck.Shuffle()
}

// Act validates and applies one betting action for the seat to act.
func (g *Game) Act(seat int, action Action, amount int) error {
	if !g.inHand || g.phase != PhaseBetting {
		return fmt.Errorf("%w: no betting round in progress", ErrInvalidState)
	}
	if seat != g.actionOn {
		return fmt.Errorf("%w: seat %d acting out of turn (action on %d)", ErrInvalidState, seat, g.actionOn)
	}
	if err := g.variant.ValidateAction(g, seat, action, amount); err != nil {
		return err
	}
	if err := g.variant.ApplyAction(g, seat, action, amount); err != nil {
		return err
	}

	// Record the seat's resulting round total rather than the raw argument
	// so calls and all-ins carry their real size.
	g.record.Actions = append(g.record.Actions, ActionRecord{
		Seat: seat, Action: action, Amount: g.players[seat].Bet, Round: g.variant.RoundName(g.round),
	})
	g.logger.Debug("action", "hand", g.handSeq, "seat", seat, "action", action, "amount", amount)
	g.emit(ActionTaken{Seat: seat, Action: action, Amount: amount, Round: g.round})

	if g.CountInHand() == 1 {
		return g.awardUncontested()
	}
	if g.variant.BettingComplete(g) {
		return g.finishRound()
	}
	g.actionOn = g.NextActiveSeat(g.actionOn)
	return nil
}

// finishRound closes the current betting round and advances through
// dealing until another decision is required or the hand ends. The loop
// handles run-outs where everyone is all-in.
func (g *Game) finishRound() error {
	for {
		if err := g.variant.EndBettingRound(g); err != nil {
			return g.abort(err)
		}
		if g.CountInHand() == 1 {
			return g.awardUncontested()
		}
		if g.variant.DealingComplete(g) {
			return g.showdown()
		}
		g.round++
		if err := g.variant.DealStreet(g, g.round); err != nil {
			return g.abort(err)
		}
		if g.phase == PhaseDrawing {
			return nil // host supplies draws next
		}
		if err := g.variant.StartBettingRound(g, g.round); err != nil {
			return g.abort(err)
		}
		if !g.variant.BettingComplete(g) {
			return nil
		}
	}
}

// Draw phase.

// BeginDrawPhase is called by draw variants from DealStreet to hand
// control to the players for card exchanges.
func (g *Game) BeginDrawPhase() {
	g.phase = PhaseDrawing
	for _, p := range g.players {
		p.drew = false
	}
	g.actionOn = g.NextInHandSeat(g.button)
}

// Draw exchanges up to MaxDraws cards for the seat whose turn it is.
// Passing no indexes stands pat. All-in players still draw.
func (g *Game) Draw(seat int, indexes []int) error {
	if !g.inHand || g.phase != PhaseDrawing {
		return fmt.Errorf("%w: no draw phase in progress", ErrInvalidState)
	}
	if seat != g.actionOn {
		return fmt.Errorf("%w: seat %d drawing out of turn (action on %d)", ErrInvalidState, seat, g.actionOn)
	}
	p := g.players[seat]
	if maxDraws := g.variant.MaxDraws(g, seat); len(indexes) > maxDraws {
		return fmt.Errorf("%w: %d draws exceeds maximum %d", ErrInvalidAction, len(indexes), maxDraws)
	}
	seen := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(p.Cards()) {
			return fmt.Errorf("%w: draw index %d out of range", ErrInvalidAction, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: duplicate draw index %d", ErrInvalidAction, idx)
		}
		seen[idx] = true
	}
	if err := g.variant.ApplyDraw(g, seat, indexes); err != nil {
		return g.abort(err)
	}
	p.drew = true
	g.emit(DrawTaken{Seat: seat, Count: len(indexes)})

	// Advance to the next in-hand seat that has not drawn yet.
	next := g.nextSeat(seat, func(q *Player) bool { return q.InHand() && !q.drew })
	if next != -1 {
		g.actionOn = next
		return nil
	}
	g.phase = PhaseBetting
	if err := g.variant.StartBettingRound(g, g.round); err != nil {
		return g.abort(err)
	}
	if g.variant.BettingComplete(g) {
		return g.finishRound()
	}
	return nil
}

// Dealing helpers used by variants.

// DealTo deals one card to a seat. Face-up deals are recorded as reveals
// and carried in the event; hole cards stay private.
func (g *Game) DealTo(seat int, faceUp bool) error {
	p := g.players[seat]
	c, err := g.deck.Deal()
	if err != nil {
		return err
	}
	p.addCard(c, faceUp)
	ev := CardsDealt{Seat: seat, Count: 1, FaceUp: faceUp}
	if faceUp {
		ev.Cards = []poker.Card{c}
		g.record.Reveals = append(g.record.Reveals, RevealRecord{
			Seat: seat, Card: c, Round: g.variant.RoundName(g.round),
		})
	}
	g.emit(ev)
	return nil
}

// DealBoard burns (optionally) and deals n community cards.
func (g *Game) DealBoard(n int, burn bool) error {
	if burn {
		if err := g.deck.Burn(); err != nil {
			return err
		}
	}
	dealt := make([]poker.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := g.deck.Deal()
		if err != nil {
			return err
		}
		g.board = append(g.board, c)
		dealt = append(dealt, c)
	}
	g.record.Board = append([]poker.Card(nil), g.board...)
	g.emit(BoardDealt{Round: g.round, Cards: dealt, Board: g.Board()})
	return nil
}

// ReplaceCards swaps the named hand indexes for fresh cards off the deck.
func (g *Game) ReplaceCards(seat int, indexes []int) error {
	p := g.players[seat]
	for _, idx := range indexes {
		c, err := g.deck.Deal()
		if err != nil {
			return err
		}
		p.replaceCard(idx, c)
	}
	return nil
}

// PostForcedBet commits a live forced bet (blind or bring-in) for a seat,
// clipped to the stack. Returns the amount actually paid.
func (g *Game) PostForcedBet(seat int, kind string, amount int) int {
	p := g.players[seat]
	paid := p.commit(amount)
	g.record.Posts = append(g.record.Posts, PostRecord{Seat: seat, Kind: kind, Amount: paid})
	g.emit(ForcedBet{Seat: seat, Kind: kind, Amount: paid})
	return paid
}

// PostAnte commits a dead forced bet: it counts toward the pot and the
// seat's hand total but not toward the current round bet.
func (g *Game) PostAnte(seat int, amount int) {
	p := g.players[seat]
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.TotalBet += amount
	if p.Stack == 0 && p.State == Active {
		p.State = AllIn
	}
	g.record.Posts = append(g.record.Posts, PostRecord{Seat: seat, Kind: "ante", Amount: amount})
	g.emit(ForcedBet{Seat: seat, Kind: "ante", Amount: amount})
}
