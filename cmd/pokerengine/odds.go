package main

import (
	"fmt"
	"time"

	"github.com/lox/pokerengine/internal/engine"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

// OddsCmd estimates hold'em equity for a hand against random opponents.
type OddsCmd struct {
	Hand       string `arg:"" help:"Hero hole cards, e.g. AsKs"`
	Board      string `help:"Known board cards, e.g. 'Ad 7h 2c'"`
	Opponents  int    `default:"1" help:"Number of random opponents"`
	Iterations int    `default:"100000" help:"Monte Carlo iterations"`
	Seed       int64  `help:"Deterministic RNG seed"`
}

func (c *OddsCmd) Run(cli *CLI) error {
	hero, err := poker.ParseCards(c.Hand)
	if err != nil {
		return err
	}
	if len(hero) != 2 {
		return fmt.Errorf("%w: hero hand must be exactly 2 cards", engine.ErrInvalidArgument)
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return err
		}
	}
	if len(board) > 5 {
		return fmt.Errorf("%w: board has at most 5 cards", engine.ErrInvalidArgument)
	}
	if c.Opponents < 1 || c.Opponents > 9 {
		return fmt.Errorf("%w: opponents must be 1-9", engine.ErrInvalidArgument)
	}

	var seen [52]bool
	for _, card := range append(append([]poker.Card{}, hero...), board...) {
		if seen[card] {
			return fmt.Errorf("%w: duplicate card %s", engine.ErrInvalidArgument, card)
		}
		seen[card] = true
	}
	pool := make([]poker.Card, 0, 52)
	for i := 0; i < 52; i++ {
		if !seen[i] {
			pool = append(pool, poker.Card(i))
		}
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	need := (5 - len(board)) + 2*c.Opponents
	var wins, ties float64
	full := make([]poker.Card, 0, 5)
	start := time.Now()

	for iter := 0; iter < c.Iterations; iter++ {
		for i := 0; i < need; i++ {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}
		full = append(full[:0], board...)
		full = append(full, pool[:5-len(board)]...)

		heroScore := poker.Evaluate7(append(append([]poker.Card{}, hero...), full...))
		best := heroScore
		heroBest, split := true, 1
		deal := pool[5-len(board):]
		for opp := 0; opp < c.Opponents; opp++ {
			hole := deal[opp*2 : opp*2+2]
			score := poker.Evaluate7(append(append([]poker.Card{}, hole...), full...))
			switch {
			case score > best:
				best = score
				heroBest = false
			case score == best && heroBest:
				split++
			}
		}
		if heroBest {
			if split > 1 {
				ties += 1 / float64(split)
			} else {
				wins++
			}
		}
	}

	equity := (wins + ties) / float64(c.Iterations)
	fmt.Printf("hand:       %s\n", poker.CardsString(hero))
	if len(board) > 0 {
		fmt.Printf("board:      %s\n", poker.CardsString(board))
	}
	fmt.Printf("opponents:  %d\n", c.Opponents)
	fmt.Printf("iterations: %d (%s)\n", c.Iterations, time.Since(start).Round(time.Millisecond))
	fmt.Printf("equity:     %.2f%%\n", equity*100)
	fmt.Printf("win:        %.2f%%  tie share: %.2f%%\n",
		wins/float64(c.Iterations)*100, ties/float64(c.Iterations)*100)
	return nil
}
