package variant

import (
	"fmt"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/poker"
)

var studRounds = [...]string{"third", "fourth", "fifth", "sixth", "seventh"}

// stud is seven-card stud and razz: antes and a bring-in instead of
// blinds, four exposed cards, fixed-limit betting that doubles from fifth
// street. The table's big blind is the small bet; the small blind is the
// bring-in.
type stud struct {
	base
	razz bool
}

// NewSevenCardStud returns seven-card stud.
func NewSevenCardStud() engine.Variant { return &stud{} }

// NewRazz returns razz, stud played for the ace-to-five low.
func NewRazz() engine.Variant { return &stud{razz: true} }

func (s *stud) Name() string {
	if s.razz {
		return "Razz"
	}
	return "Seven-Card Stud"
}

func (s *stud) Code() string {
	if s.razz {
		return "RAZZ"
	}
	return "7CS"
}

func (*stud) DefaultStructure() engine.Structure { return engine.FixedLimit }

func (*stud) StartHand(g *engine.Game) error {
	g.ResetDeckForHand()
	return nil
}

// DealInitial deals two down cards and the door card.
func (*stud) DealInitial(g *engine.Game) error {
	return dealAround(g, 3, func(pass int) bool { return pass == 2 })
}

// DealStreet deals one card per seat: up on fourth through sixth, down on
// seventh.
func (*stud) DealStreet(g *engine.Game, round int) error {
	return dealAround(g, 1, func(int) bool { return round <= 3 })
}

func (*stud) DealingComplete(g *engine.Game) bool {
	return g.Round() >= 4
}

func (*stud) RoundName(round int) string {
	return studRounds[round]
}

// fixedBet doubles from fifth street.
func fixedBet(g *engine.Game, round int) int {
	if round >= 2 {
		return 2 * g.Config().BigBlind
	}
	return g.Config().BigBlind
}

func (s *stud) StartBettingRound(g *engine.Game, round int) error {
	cfg := g.Config()
	b := g.Betting()
	b.Reset(fixedBet(g, round), fixedBet(g, round))

	if round == 0 {
		for _, p := range g.Players() {
			if p.InHand() && cfg.Ante > 0 {
				g.PostAnte(p.Seat, cfg.Ante)
			}
		}
		bi := s.BringIn(g)
		if bi == -1 {
			return fmt.Errorf("%w: no bring-in seat", engine.ErrInvalidState)
		}
		paid := g.PostForcedBet(bi, "bring-in", cfg.SmallBlind)
		b.CurrentBet = paid
		g.SetActionOn(g.NextActiveSeat(bi))
		return nil
	}
	g.SetActionOn(s.FirstToAct(g, round))
	return nil
}

// BringIn picks the seat forced to open third street: the lowest door card
// in stud, the highest in razz, suit breaking ties (clubs lowest).
func (s *stud) BringIn(g *engine.Game) int {
	best := -1
	var bestKey int
	for _, p := range g.Players() {
		if !p.InHand() {
			continue
		}
		door := p.Cards()[2]
		r := int(door.Rank())
		if s.razz && door.Rank() == poker.Ace {
			r = 1
		}
		key := r*4 + int(door.Suit())
		if best == -1 || (!s.razz && key < bestKey) || (s.razz && key > bestKey) {
			best, bestKey = p.Seat, key
		}
	}
	return best
}

// FirstToAct on later streets is the best board showing: the strongest
// exposed cards in stud, the lowest in razz. Ties go to the earliest seat
// clockwise from the button.
func (s *stud) FirstToAct(g *engine.Game, round int) int {
	best := -1
	var bestKey uint32
	n := len(g.Players())
	for i := 1; i <= n; i++ {
		seat := (g.Button() + i) % n
		p := g.Players()[seat]
		if !p.CanAct() {
			continue
		}
		key := boardKey(p.UpCards(), s.razz)
		if best == -1 || (!s.razz && key > bestKey) || (s.razz && key < bestKey) {
			best, bestKey = seat, key
		}
	}
	return best
}

// boardKey ranks a set of exposed cards: multiplicity groups first, then
// ranks descending. Razz keys use ace-low ranks so smaller means a lower
// board.
func boardKey(cards []poker.Card, razz bool) uint32 {
	var counts [15]uint8
	for _, c := range cards {
		r := uint32(c.Rank())
		if razz && c.Rank() == poker.Ace {
			r = 1
		}
		counts[r]++
	}
	var key uint32
	for mult := uint8(4); mult >= 1; mult-- {
		for r := uint32(14); r >= 1; r-- {
			if counts[r] != mult {
				continue
			}
			for i := uint8(0); i < mult; i++ {
				key = key<<6 | uint32(mult-1)<<4 | r
			}
		}
	}
	return key
}

// completing the bring-in is a raise to exactly one small bet.
func (s *stud) ValidateAction(g *engine.Game, seat int, action engine.Action, amount int) error {
	b := g.Betting()
	if action == engine.Raise && b.CurrentBet > 0 && b.CurrentBet < b.FixedBet {
		if amount != b.FixedBet {
			return fmt.Errorf("%w: must complete to %d", engine.ErrInvalidAction, b.FixedBet)
		}
		if b.HasActed(seat) {
			return fmt.Errorf("%w: betting not reopened for seat %d", engine.ErrInvalidAction, seat)
		}
		p, err := g.PlayerAt(seat)
		if err != nil {
			return err
		}
		if !p.CanAct() {
			return fmt.Errorf("%w: seat %d is %s", engine.ErrInvalidAction, seat, p.State)
		}
		if amount > p.Stack+p.Bet {
			return fmt.Errorf("%w: cannot cover the completion", engine.ErrInvalidAction)
		}
		return nil
	}
	return g.ValidateActionDefault(seat, action, amount)
}

func (s *stud) studScore(g *engine.Game, seat int) poker.Score {
	p, _ := g.PlayerAt(seat)
	return poker.EvaluateBest(p.Cards())
}

func (s *stud) razzScore(g *engine.Game, seat int) poker.LowScore {
	p, _ := g.PlayerAt(seat)
	return poker.EvaluateAceToFiveLow(p.Cards())
}

func (s *stud) DescribeHand(g *engine.Game, seat int) string {
	if s.razz {
		return aceToFiveString(s.razzScore(g, seat))
	}
	return s.studScore(g, seat).String()
}

func (s *stud) CompareHands(g *engine.Game, a, b int) int {
	if s.razz {
		return s.razzScore(g, a).Compare(s.razzScore(g, b))
	}
	return s.studScore(g, a).Compare(s.studScore(g, b))
}

func (*stud) CardFaceUp(g *engine.Game, seat, idx int) bool {
	p, err := g.PlayerAt(seat)
	if err != nil {
		return false
	}
	return p.FaceUp(idx)
}
